package service

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tempnet/builder"
	"tempnet/models"
	"testing"
)

func newTestSampler(t *testing.T, seed uint64) *Sampler {
	s, err := NewSampler(1000, seed)
	require.NoError(t, err)
	return s
}

func countTriples(pool []models.Triple) map[string]int {
	counts := map[string]int{}
	for _, tr := range pool {
		counts[tr.String()]++
	}
	return counts
}

func TestNewSamplerRejectsPrecision(t *testing.T) {
	_, err := NewSampler(0, 1)
	assert.ErrorIs(t, err, ErrInvalidPrecision)
}

func TestTwoPathPool(t *testing.T) {
	pool := newTestSampler(t, 1).TwoPathPool(exampleExtraction())
	assert.Len(t, pool, 22)
	assert.Equal(t, map[string]int{
		"c,e,f": 11,
		"a,e,g": 4,
		"f,e,b": 2,
		"g,e,f": 1,
		"b,e,g": 2,
		"e,f,e": 2,
	}, countTriples(pool))
}

func TestShuffleTwoPaths(t *testing.T) {
	x := exampleExtraction()
	shuffled, err := newTestSampler(t, 3).ShuffleTwoPaths(x, 0)
	require.NoError(t, err)

	assert.Equal(t, 20, shuffled.Length(), "default length is the step count")
	assert.Equal(t, 20, shuffled.EdgeCount())
	for step := 0; step < 20; step += 2 {
		in, out := shuffled.Edges(step), shuffled.Edges(step+1)
		require.Len(t, in, 1)
		require.Len(t, out, 1)
		tr := models.Triple{Pred: in[0].Source, Mid: in[0].Target, Succ: out[0].Target}
		assert.Equal(t, in[0].Target, out[0].Source)
		assert.Positive(t, x.Weight(tr), tr.String())
	}
}

func TestShuffleTwoPathsIsReproducible(t *testing.T) {
	x := exampleExtraction()
	a, err := newTestSampler(t, 42).ShuffleTwoPaths(x, 50)
	require.NoError(t, err)
	b, err := newTestSampler(t, 42).ShuffleTwoPaths(x, 50)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, 50, a.EdgeCount())
}

func TestShuffleTwoPathsFrequencies(t *testing.T) {
	x := exampleExtraction()
	const draws = 20000
	shuffled, err := newTestSampler(t, 11).ShuffleTwoPaths(x, 2*draws)
	require.NoError(t, err)

	cef := 0
	for step := 0; step < 2*draws; step += 2 {
		in, out := shuffled.Edges(step)[0], shuffled.Edges(step+1)[0]
		if in.Source == "c" && out.Target == "f" {
			cef++
		}
	}
	assert.InDelta(t, 0.5, float64(cef)/draws, 0.02)
}

func TestEdgePools(t *testing.T) {
	in, out := newTestSampler(t, 1).EdgePools(exampleExtraction())
	assert.Len(t, in, 22)
	assert.Len(t, out, 22)
	counts := map[models.Edge]int{}
	for _, e := range in {
		counts[e]++
	}
	assert.Equal(t, 11, counts[models.Edge{Source: "c", Target: "e"}])
	assert.Equal(t, 1, counts[models.Edge{Source: "g", Target: "e"}])
}

func TestShuffleEdges(t *testing.T) {
	x := exampleExtraction()
	shuffled, err := newTestSampler(t, 5).ShuffleEdges(x, 0)
	require.NoError(t, err)
	assert.Equal(t, 22, shuffled.EdgeCount(), "default length is the cumulative weight")

	for step := 0; step < 22; step += 2 {
		in, out := shuffled.Edges(step)[0], shuffled.Edges(step+1)[0]
		assert.Equal(t, in.Target, out.Source)
		assert.True(t, x.FirstOrder.HasEdge(in.Source, in.Target))
		assert.True(t, x.FirstOrder.HasEdge(out.Source, out.Target))
	}
}

func TestShuffleEdgesAttemptLimit(t *testing.T) {
	s := newTestSampler(t, 1)
	s.MaxAttempts = 0
	_, err := s.ShuffleEdges(exampleExtraction(), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoContinuation)

	var samplingErr *SamplingError
	require.True(t, errors.As(err, &samplingErr))
	assert.Zero(t, samplingErr.Attempts)
}

func TestShuffleEmptyPool(t *testing.T) {
	x := builder.Extract(models.NewTemporalEdgeLog(), builder.DefaultOptions())
	s := newTestSampler(t, 1)

	_, err := s.ShuffleTwoPaths(x, 10)
	assert.ErrorIs(t, err, ErrEmptyPool)
	_, err = s.ShuffleEdges(x, 10)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

const sampleLength = 200000

func assertSameAggregate(t *testing.T, want, got *models.WeightedGraph) {
	t.Helper()
	require.Equal(t, want.EdgeCount(), got.EdgeCount())
	wantTotal, gotTotal := want.CumulativeWeight(), got.CumulativeWeight()
	for _, e := range want.Edges() {
		assert.InDelta(t, want.Weight(e.Source, e.Target)/wantTotal,
			got.Weight(e.Source, e.Target)/gotTotal, 0.03, e.String())
	}
}

func TestShuffleTwoPathsPreservesStatistics(t *testing.T) {
	x := exampleExtraction()
	shuffled, err := newTestSampler(t, 7).ShuffleTwoPaths(x, sampleLength)
	require.NoError(t, err)

	y := builder.Extract(shuffled, builder.Options{})
	assertSameAggregate(t, x.FirstOrder, y.FirstOrder)
	assert.InDelta(t, BetweennessPreference(x, "e"), BetweennessPreference(y, "e"), 0.1)
}

func TestShuffleEdgesPreservesAggregateOnly(t *testing.T) {
	x := exampleExtraction()
	shuffled, err := newTestSampler(t, 7).ShuffleEdges(x, sampleLength)
	require.NoError(t, err)

	y := builder.Extract(shuffled, builder.Options{})
	assertSameAggregate(t, x.FirstOrder, y.FirstOrder)
	assert.Greater(t, BetweennessPreference(x, "e"), 1.0)
	assert.InDelta(t, 0.0, BetweennessPreference(y, "e"), 0.05)
}

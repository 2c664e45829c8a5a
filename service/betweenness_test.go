package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"sync/atomic"
	"tempnet/builder"
	"tempnet/models"
	"testing"
)

func exampleExtraction() *builder.Extraction {
	return builder.Extract(models.ExampleLog(), builder.DefaultOptions())
}

func TestRawMatrix(t *testing.T) {
	x := exampleExtraction()
	raw := RawMatrix(x, "e")

	assert.Equal(t, []string{"c", "a", "f", "g", "b"}, raw.Pred)
	assert.Equal(t, []string{"f", "g", "b"}, raw.Succ)
	assert.InDelta(t, 5.5, raw.At("c", "f"), 1e-12)
	assert.InDelta(t, 2.0, raw.At("a", "g"), 1e-12)
	assert.InDelta(t, 1.0, raw.At("f", "b"), 1e-12)
	assert.InDelta(t, 0.5, raw.At("g", "f"), 1e-12)
	assert.InDelta(t, 1.0, raw.At("b", "g"), 1e-12)
	assert.Zero(t, raw.At("c", "g"))
	assert.Zero(t, raw.At("x", "f"), "unknown predecessor")
	assert.InDelta(t, 10.0, raw.Sum(), 1e-12)
}

func TestPreferenceMatrixOf(t *testing.T) {
	x := exampleExtraction()
	p := PreferenceMatrixOf(x, "e")
	assert.InDelta(t, 11.0/20, p.At("c", "f"), 1e-12)
	assert.InDelta(t, 1.0/20, p.At("g", "f"), 1e-12)
	assert.InDelta(t, 1.0, p.Sum(), 1e-12)

	f := PreferenceMatrixOf(x, "f")
	assert.InDelta(t, 1.0, f.At("e", "e"), 1e-12)
}

func TestNormalizeZeroMatrix(t *testing.T) {
	x := exampleExtraction()
	// b sees e on both sides but no two-path through b was observed
	p := PreferenceMatrixOf(x, "b")
	require.False(t, p.Empty())
	assert.Zero(t, p.Sum())
	assert.Zero(t, MutualInformation(p))
}

func TestEmptyMatrix(t *testing.T) {
	x := exampleExtraction()
	p := PreferenceMatrixOf(x, "c")
	assert.True(t, p.Empty(), "c has no predecessor")
	assert.Zero(t, p.Sum())
	assert.Zero(t, p.At("a", "e"))
	assert.Zero(t, BetweennessPreference(x, "c"))
	assert.Zero(t, BetweennessPreference(x, "nobody"))
}

func TestBetweennessPreference(t *testing.T) {
	x := exampleExtraction()
	assert.InDelta(t, 1.2954618442383219, BetweennessPreference(x, "e"), 1e-12)
	assert.InDelta(t, 0.0, BetweennessPreference(x, "f"), 1e-12)
}

func TestBetweennessPreferenceUniform(t *testing.T) {
	log := models.NewTemporalEdgeLog()
	log.Append(1, "b", "c")
	log.Append(1, "d", "c")
	log.Append(2, "c", "a")
	log.Append(2, "c", "e")
	x := builder.Extract(log, builder.DefaultOptions())

	p := PreferenceMatrixOf(x, "c")
	for _, pred := range []string{"b", "d"} {
		for _, succ := range []string{"a", "e"} {
			assert.InDelta(t, 0.25, p.At(pred, succ), 1e-12)
		}
	}
	assert.InDelta(t, 0.0, MutualInformation(p), 1e-12)
}

func TestUncorrelatedMatrix(t *testing.T) {
	x := exampleExtraction()
	u := UncorrelatedMatrix(x.FirstOrder, "e")

	assert.InDelta(t, 5.5/11*7/11, u.At("c", "f"), 1e-12)
	assert.InDelta(t, 0.5/11*1/11, u.At("g", "b"), 1e-12)
	assert.InDelta(t, 2.0/11*3/11, u.At("a", "g"), 1e-12)
	assert.InDelta(t, 1.0, u.Sum(), 1e-12)
	assert.InDelta(t, 0.0, MutualInformation(u), 1e-12, "independent halves carry no information")

	assert.True(t, UncorrelatedMatrix(x.FirstOrder, "a").Empty())
}

func TestDistribution(t *testing.T) {
	x := exampleExtraction()
	assert.ElementsMatch(t, []string{"e", "f", "b", "g"}, Candidates(x))

	for _, workers := range []int{0, 1, 3} {
		dist, err := Analyzer{Workers: workers}.Distribution(context.Background(), x)
		require.NoError(t, err)
		require.Len(t, dist, 4)
		values := map[string]float64{}
		for _, r := range dist {
			values[r.Node] = r.Value
		}
		assert.InDelta(t, 1.2954618442383219, values["e"], 1e-12)
		assert.InDelta(t, 0.0, values["f"], 1e-12)
	}
}

func TestWriteDistribution(t *testing.T) {
	x := exampleExtraction()
	var buf bytes.Buffer
	require.NoError(t, Analyzer{Workers: 2}.WriteDistribution(context.Background(), x, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines, "e 1.295462")
	for _, line := range lines {
		assert.Len(t, strings.Fields(line), 2, line)
	}
}

func TestDistributionCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Analyzer{Workers: 2}.Distribution(ctx, exampleExtraction())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDistributionEmpty(t *testing.T) {
	x := builder.Extract(models.NewTemporalEdgeLog(), builder.DefaultOptions())
	dist, err := Analyzer{}.Distribution(context.Background(), x)
	require.NoError(t, err)
	assert.Empty(t, dist)
}

func chainExtraction(n int) *builder.Extraction {
	log := models.NewTemporalEdgeLog()
	for i := 0; i < n; i++ {
		log.Append(i, fmt.Sprintf("v%d", i), fmt.Sprintf("v%d", i+1))
	}
	return builder.Extract(log, builder.Options{})
}

func TestDistributionStopsOnEmitError(t *testing.T) {
	x := chainExtraction(500)
	require.Len(t, Candidates(x), 499)

	var calls atomic.Int64
	a := Analyzer{Workers: 1, preference: func(x *builder.Extraction, v string) float64 {
		calls.Add(1)
		return BetweennessPreference(x, v)
	}}
	errWrite := errors.New("disk full")
	emits := 0
	err := a.stream(context.Background(), x, func(NodePreference) error {
		emits++
		return errWrite
	})
	assert.ErrorIs(t, err, errWrite)
	assert.Equal(t, 1, emits)
	assert.Less(t, calls.Load(), int64(50), "workers keep running after the writer failed")
}

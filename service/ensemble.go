package service

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"tempnet/builder"
	"tempnet/helper"
	"tempnet/logs"
	"tempnet/models"
)

var (
	ErrEmptyPool        = errors.New("sampling pool is empty")
	ErrNoContinuation   = errors.New("no continuation for drawn half edge")
	ErrInvalidPrecision = errors.New("precision must be at least 1")
)

const DefaultMaxAttempts = 100000

// SamplingError reports a half edge for which rejection sampling found no
// matching continuation within the attempt limit
type SamplingError struct {
	Half     models.Edge
	Attempts int
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("no continuation of %s after %d attempts", e.Half, e.Attempts)
}

func (e *SamplingError) Unwrap() error {
	return ErrNoContinuation
}

// Sampler generates temporal networks from the statistics of an extraction.
// It owns one seeded generator and is not safe for concurrent use.
type Sampler struct {
	Precision   int // maximum denominator when approximating weights
	MaxAttempts int // bound of the rejection loop in ShuffleEdges

	rng *rand.Rand
}

func NewSampler(precision int, seed uint64) (*Sampler, error) {
	if precision < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPrecision, precision)
	}
	return &Sampler{
		Precision:   precision,
		MaxAttempts: DefaultMaxAttempts,
		rng:         rand.New(rand.NewPCG(seed, seed)),
	}, nil
}

// commonDenominator returns the LCM of the denominators of the mixed
// fraction approximations of values
func (s *Sampler) commonDenominator(values []float64) int {
	lcm := 1
	for _, v := range values {
		_, _, den := helper.RoundToMixedFraction(v, s.Precision)
		lcm = helper.LCM(lcm, den)
	}
	return lcm
}

func replicas(value float64, lcm int) int {
	return int(math.RoundToEven(value * float64(lcm)))
}

// TwoPathPool replicates every (pred, node, succ) combination of the raw
// betweenness preference matrices proportionally to its entry
func (s *Sampler) TwoPathPool(x *builder.Extraction) []models.Triple {
	var (
		triples []models.Triple
		values  []float64
	)
	for _, v := range x.FirstOrder.Vertices() {
		raw := RawMatrix(x, v)
		for _, p := range raw.Pred {
			for _, succ := range raw.Succ {
				triples = append(triples, models.Triple{Pred: p, Mid: v, Succ: succ})
				values = append(values, raw.At(p, succ))
			}
		}
	}
	lcm := s.commonDenominator(values)

	var pool []models.Triple
	for i, t := range triples {
		for k := replicas(values[i], lcm); k > 0; k-- {
			pool = append(pool, t)
		}
	}
	logs.Logger.Debugf("two-path pool: %d entries, common denominator %d", len(pool), lcm)
	return pool
}

// ShuffleTwoPaths draws length/2 two-paths from the pool and emits each as
// two edges at consecutive time steps. The result preserves betweenness
// preference and the weighted aggregate network in expectation.
// A length <= 0 means the step count of the extraction.
func (s *Sampler) ShuffleTwoPaths(x *builder.Extraction, length int) (*models.TemporalEdgeLog, error) {
	if length <= 0 {
		length = x.Steps
	}
	pool := s.TwoPathPool(x)
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	out := models.NewTemporalEdgeLog()
	t := 0
	for l := 0; l < length/2; l++ {
		tp := pool[s.rng.IntN(len(pool))]
		out.AppendEdge(t, tp.In())
		t++
		out.AppendEdge(t, tp.Out())
		t++
	}
	return out, nil
}

// EdgePools returns the incoming and outgoing halves of all observed
// two-paths, replicated by two-path weight
func (s *Sampler) EdgePools(x *builder.Extraction) (in, out []models.Edge) {
	paths := x.TwoPaths()
	values := make([]float64, len(paths))
	for i, p := range paths {
		values[i] = p.Weight
	}
	lcm := s.commonDenominator(values)
	for _, p := range paths {
		for k := replicas(p.Weight, lcm); k > 0; k-- {
			in = append(in, p.In())
			out = append(out, p.Out())
		}
	}
	return in, out
}

// ShuffleEdges draws an incoming half, then rejection-samples an outgoing
// half starting where it ends, and emits both at consecutive steps until
// length edges are written. Only the aggregate network is preserved.
// A length <= 0 means the cumulative aggregate weight.
func (s *Sampler) ShuffleEdges(x *builder.Extraction, length int) (*models.TemporalEdgeLog, error) {
	if length <= 0 {
		length = int(x.FirstOrder.CumulativeWeight())
	}
	in, out := s.EdgePools(x)
	if len(in) == 0 || len(out) == 0 {
		return nil, ErrEmptyPool
	}
	result := models.NewTemporalEdgeLog()
	for l := 0; l < length; {
		first := in[s.rng.IntN(len(in))]
		second, ok := s.continuation(first, out)
		if !ok {
			return nil, &SamplingError{Half: first, Attempts: s.MaxAttempts}
		}
		result.AppendEdge(l, first)
		l++
		result.AppendEdge(l, second)
		l++
	}
	return result, nil
}

func (s *Sampler) continuation(first models.Edge, out []models.Edge) (models.Edge, bool) {
	for attempt := 0; attempt < s.MaxAttempts; attempt++ {
		if e := out[s.rng.IntN(len(out))]; e.Source == first.Target {
			return e, true
		}
	}
	return models.Edge{}, false
}

package models

import (
	"github.com/tidwall/btree"
	"math"
)

// TemporalEdgeLog is the time-ordered sequence of interactions of a temporal
// network. Time keys are unique, edges inside one step keep insertion order.
//
// Every mutation increments Version. Derived structures (aggregate graphs,
// two-path registries) record the version they were built from and are stale
// once it moves; they are never updated in place.
type TemporalEdgeLog struct {
	steps   *btree.Map[int, []Edge]
	version uint64
}

func NewTemporalEdgeLog() *TemporalEdgeLog {
	return &TemporalEdgeLog{steps: new(btree.Map[int, []Edge])}
}

// FromEdgeSequence assigns the times 0, 1, 2, ... to an ordered edge sequence
func FromEdgeSequence(sequence []Edge) *TemporalEdgeLog {
	l := NewTemporalEdgeLog()
	for t, e := range sequence {
		l.AppendEdge(t, e)
	}
	return l
}

// Append adds source -> target at time t
func (l *TemporalEdgeLog) Append(t int, source, target string) {
	l.AppendEdge(t, Edge{Source: source, Target: target})
}

func (l *TemporalEdgeLog) AppendEdge(t int, e Edge) {
	edges, _ := l.steps.Get(t)
	l.steps.Set(t, append(edges, e))
	l.version++
}

// Version is incremented by every mutation
func (l *TemporalEdgeLog) Version() uint64 {
	return l.version
}

// Edges returns a copy of the edges at time t, nil if t is not occupied
func (l *TemporalEdgeLog) Edges(t int) []Edge {
	edges, ok := l.steps.Get(t)
	if !ok {
		return nil
	}
	return append([]Edge(nil), edges...)
}

// Times returns the occupied time steps in ascending order
func (l *TemporalEdgeLog) Times() []int {
	return l.steps.Keys()
}

// Length returns the number of occupied time steps
func (l *TemporalEdgeLog) Length() int {
	return l.steps.Len()
}

// Scan visits the steps in ascending time order until iter returns false.
// The slices must not be modified.
func (l *TemporalEdgeLog) Scan(iter func(t int, edges []Edge) bool) {
	l.steps.Scan(iter)
}

// ScanReverse visits the steps in descending time order
func (l *TemporalEdgeLog) ScanReverse(iter func(t int, edges []Edge) bool) {
	l.steps.Reverse(iter)
}

func (l *TemporalEdgeLog) EdgeCount() int {
	count := 0
	l.Scan(func(_ int, edges []Edge) bool {
		count += len(edges)
		return true
	})
	return count
}

// VertexCount counts the distinct nodes involved in any interaction
func (l *TemporalEdgeLog) VertexCount() int {
	seen := make(map[string]struct{})
	l.Scan(func(_ int, edges []Edge) bool {
		for _, e := range edges {
			seen[e.Source] = struct{}{}
			seen[e.Target] = struct{}{}
		}
		return true
	})
	return len(seen)
}

// MinEdgesPerStep returns the lowest number of edges in one step, 0 for an empty log
func (l *TemporalEdgeLog) MinEdgesPerStep() int {
	if l.Length() == 0 {
		return 0
	}
	lo := math.MaxInt
	l.Scan(func(_ int, edges []Edge) bool {
		if len(edges) < lo {
			lo = len(edges)
		}
		return true
	})
	return lo
}

// MaxEdgesPerStep returns the highest number of edges in one step
func (l *TemporalEdgeLog) MaxEdgesPerStep() int {
	hi := 0
	l.Scan(func(_ int, edges []Edge) bool {
		if len(edges) > hi {
			hi = len(edges)
		}
		return true
	})
	return hi
}

// Replace drops all steps and installs steps. Empty steps are not kept.
func (l *TemporalEdgeLog) Replace(steps map[int][]Edge) {
	l.steps = new(btree.Map[int, []Edge])
	for t, edges := range steps {
		if len(edges) == 0 {
			continue
		}
		l.steps.Set(t, append([]Edge(nil), edges...))
	}
	l.version++
}

// Rebucket maps every time t to (t - min_t) / window and merges duplicate
// edges inside each new bucket. A window of 1 leaves the log untouched.
func (l *TemporalEdgeLog) Rebucket(window int) error {
	if window < 1 {
		return ErrInvalidWindow
	}
	if window == 1 || l.Length() == 0 {
		return nil
	}
	minT, _, _ := l.steps.Min()
	next := new(btree.Map[int, []Edge])
	seen := make(map[int]map[Edge]struct{})
	l.Scan(func(t int, edges []Edge) bool {
		bucket := (t - minT) / window
		if seen[bucket] == nil {
			seen[bucket] = make(map[Edge]struct{})
		}
		merged, _ := next.Get(bucket)
		for _, e := range edges {
			if _, dup := seen[bucket][e]; dup {
				continue
			}
			seen[bucket][e] = struct{}{}
			merged = append(merged, e)
		}
		next.Set(bucket, merged)
		return true
	})
	l.steps = next
	l.version++
	return nil
}

// Clone returns a deep copy with version 0
func (l *TemporalEdgeLog) Clone() *TemporalEdgeLog {
	c := NewTemporalEdgeLog()
	l.Scan(func(t int, edges []Edge) bool {
		c.steps.Set(t, append([]Edge(nil), edges...))
		return true
	})
	return c
}

// Equal reports whether both logs occupy the same time steps with the same
// edge multiset in every step. Order inside a step is irrelevant.
func (l *TemporalEdgeLog) Equal(other *TemporalEdgeLog) bool {
	if other == nil || l.Length() != other.Length() {
		return false
	}
	equal := true
	l.Scan(func(t int, edges []Edge) bool {
		theirs, ok := other.steps.Get(t)
		if !ok || len(theirs) != len(edges) {
			equal = false
			return false
		}
		counts := make(map[Edge]int, len(edges))
		for _, e := range edges {
			counts[e]++
		}
		for _, e := range theirs {
			counts[e]--
			if counts[e] < 0 {
				equal = false
				return false
			}
		}
		return true
	})
	return equal
}

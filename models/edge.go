package models

import "fmt"

// Edge is a directed interaction source -> target
type Edge struct {
	Source string
	Target string
}

func (e Edge) Reversed() Edge {
	return Edge{Source: e.Target, Target: e.Source}
}

// Token names the edge when it is a vertex of a second-order graph
func (e Edge) Token() string {
	return fmt.Sprintf("(%s;%s)", e.Source, e.Target)
}

func (e Edge) String() string {
	return e.Source + "->" + e.Target
}

// Triple is the node sequence pred -> mid -> succ of a two-path
type Triple struct {
	Pred string
	Mid  string
	Succ string
}

// In returns the incoming half (pred, mid)
func (t Triple) In() Edge { return Edge{Source: t.Pred, Target: t.Mid} }

// Out returns the outgoing half (mid, succ)
func (t Triple) Out() Edge { return Edge{Source: t.Mid, Target: t.Succ} }

func (t Triple) String() string {
	return t.Pred + "," + t.Mid + "," + t.Succ
}

// TwoPath is a triple with its accumulated statistical weight
type TwoPath struct {
	Triple
	Weight float64
}

package models

import "errors"

var (
	ErrInvalidWindow  = errors.New("aggregation window must be at least 1")
	ErrNotIrreducible = errors.New("graph not irreducible: not strongly connected")
	ErrEmptyGraph     = errors.New("graph has no vertices")
)

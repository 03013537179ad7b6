package domain

import "fmt"

// DefaultFieldPoints are the sample points used when a caller supplies none.
func DefaultFieldPoints() []Point {
	return []Point{P2(1, 1), P2(2, 1), P2(1, 2), P2(-1, 1)}
}

// FieldCheck is the cross-partial evidence gathered at one sample point.
type FieldCheck struct {
	At    Point
	DPdy  float64
	DQdx  float64
	Match bool
}

// FieldCheckResult aggregates the per-point checks of a 2-D field (P, Q).
// Conservative is a finite-sample heuristic: matching cross partials at a handful of
// points is necessary, not sufficient, for the field to be conservative.
type FieldCheckResult struct {
	Checks       []FieldCheck
	Conservative bool
}

// Matches counts the sample points whose cross partials agreed.
func (r FieldCheckResult) Matches() int {
	n := 0
	for _, c := range r.Checks {
		if c.Match {
			n++
		}
	}
	return n
}

// PotentialHint returns "f(x,y) = ∫(P)dx + g(y)" for a field that passed the test.
// A field that failed gets no hint.
func (r FieldCheckResult) PotentialHint(p string) (string, bool) {
	if !r.Conservative {
		return "", false
	}
	return fmt.Sprintf("f(x,y) = ∫(%s)dx + g(y)", p), true
}

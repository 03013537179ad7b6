package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Sample is one evaluated step of a path walk.
// T is the walk parameter in (0, 1]; T = 1 is the target itself.
type Sample struct {
	T     float64 `json:"t"`
	At    Point   `json:"at"`
	Value float64 `json:"value"`
}

// Distance is the normalized remaining distance to the target, 1 - T.
func (s Sample) Distance() float64 { return 1 - s.T }

// SampleSeries holds samples in walk order (ascending T). The order is significant:
// the limit heuristic reads the tail of the series as "closest to the target".
type SampleSeries []Sample

// Values returns the sample values in walk order.
func (s SampleSeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, sample := range s {
		out[i] = sample.Value
	}
	return out
}

// LimitEstimate is the outcome of the path-limit heuristic.
// Exists == false means "no limit along this path"; it is a result, not an error.
type LimitEstimate struct {
	Value  float64
	Exists bool
	// Window is the number of trailing samples averaged.
	Window int
}

func (e LimitEstimate) String() string {
	if !e.Exists {
		return "no limit along this path"
	}
	return fmt.Sprintf("≈ %g", e.Value)
}

// Range is a closed interval of one grid axis.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// DefaultRange is the window sampled when the caller does not choose one.
var DefaultRange = Range{Min: -5, Max: 5}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// IsZero reports whether r is the unset range {0, 0}.
func (r Range) IsZero() bool { return r.Min == 0 && r.Max == 0 }

// Valid reports whether r is finite and Min < Max.
func (r Range) Valid() bool {
	return Defined(r.Min) && Defined(r.Max) && r.Min < r.Max
}

func (r Range) String() string { return fmt.Sprintf("%g:%g", r.Min, r.Max) }

// ParseRange reads "min:max".
func ParseRange(s string) (Range, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Range{}, Invalidf("range %q must look like min:max", s)
	}
	minV, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return Range{}, Invalidf("range %q: %v", s, err)
	}
	maxV, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return Range{}, Invalidf("range %q: %v", s, err)
	}
	r := Range{Min: minV, Max: maxV}
	if !r.Valid() {
		return Range{}, Invalidf("range %q: min must be below max", s)
	}
	return r, nil
}

// At returns the i-th of resolution+1 evenly spaced values.
func (r Range) At(i, resolution int) float64 {
	return r.Min + r.Span()*(float64(i)/float64(resolution))
}

// SurfacePoint is one finite sample of z = f(x, y).
type SurfacePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ContourLevel holds the grid points found near one level of f.
type ContourLevel struct {
	Level  float64 `json:"level"`
	Points []Point `json:"points"`
}

// Package kernel implements the finite-difference calculus operations.
//
// Every operation is total: evaluator failures surface as NaN values and heuristic
// outcomes ("no limit along this path", "inconclusive") are ordinary results.
package kernel

import (
	"io"
	"log/slog"
	"math"
	"runtime"

	"github.com/aretw0/multivar/pkg/domain"
	"github.com/aretw0/multivar/pkg/ports"
)

const (
	DefaultStep              = 1e-4
	DefaultApproachRadius    = 0.05
	DefaultFieldTolerance    = 1e-4
	DefaultContourBand       = 0.1
	DefaultLagrangeTolerance = 0.1
	DefaultPathSteps         = 20
	DefaultSurfaceResolution = 30
	DefaultContourResolution = 50
)

// Settings is the effective tuning of a Kernel.
// Two kernels with equal Settings and evaluators produce identical results.
type Settings struct {
	Step              float64 `json:"step"`
	ApproachRadius    float64 `json:"approach_radius"`
	FieldTolerance    float64 `json:"field_tolerance"`
	ContourBand       float64 `json:"contour_band"`
	LagrangeTolerance float64 `json:"lagrange_tolerance"`
	PathSteps         int     `json:"path_steps"`
	SurfaceResolution int     `json:"surface_resolution"`
	ContourResolution int     `json:"contour_resolution"`
	Workers           int     `json:"workers"`
}

// DefaultSettings returns the tuning used when no option overrides it.
func DefaultSettings() Settings {
	return Settings{
		Step:              DefaultStep,
		ApproachRadius:    DefaultApproachRadius,
		FieldTolerance:    DefaultFieldTolerance,
		ContourBand:       DefaultContourBand,
		LagrangeTolerance: DefaultLagrangeTolerance,
		PathSteps:         DefaultPathSteps,
		SurfaceResolution: DefaultSurfaceResolution,
		ContourResolution: DefaultContourResolution,
		Workers:           runtime.GOMAXPROCS(0),
	}
}

// Option configures a Kernel. Out-of-range values are ignored and the default kept.
type Option func(*Kernel)

// WithStep sets the finite-difference step h.
func WithStep(h float64) Option {
	return func(k *Kernel) {
		if positive(h) {
			k.settings.Step = h
		}
	}
}

// WithApproachRadius sets the distance from the target at which limit paths start.
func WithApproachRadius(r float64) Option {
	return func(k *Kernel) {
		if positive(r) {
			k.settings.ApproachRadius = r
		}
	}
}

// WithFieldTolerance sets the cross-partial tolerance of the conservative field test.
func WithFieldTolerance(tol float64) Option {
	return func(k *Kernel) {
		if positive(tol) {
			k.settings.FieldTolerance = tol
		}
	}
}

// WithContourBand sets how close to a level a grid value must be to join its contour.
func WithContourBand(band float64) Option {
	return func(k *Kernel) {
		if positive(band) {
			k.settings.ContourBand = band
		}
	}
}

// WithLagrangeTolerance sets the residual threshold of CheckLagrange.
func WithLagrangeTolerance(tol float64) Option {
	return func(k *Kernel) {
		if positive(tol) {
			k.settings.LagrangeTolerance = tol
		}
	}
}

// WithPathSteps sets the default number of samples along a limit path.
func WithPathSteps(n int) Option {
	return func(k *Kernel) {
		if n > 0 {
			k.settings.PathSteps = n
		}
	}
}

// WithSurfaceResolution sets the default surface grid resolution.
func WithSurfaceResolution(n int) Option {
	return func(k *Kernel) {
		if n > 0 {
			k.settings.SurfaceResolution = n
		}
	}
}

// WithContourResolution sets the default contour grid resolution.
func WithContourResolution(n int) Option {
	return func(k *Kernel) {
		if n > 0 {
			k.settings.ContourResolution = n
		}
	}
}

// WithWorkers bounds the number of concurrent evaluations. 1 runs sequentially.
func WithWorkers(n int) Option {
	return func(k *Kernel) {
		if n > 0 {
			k.settings.Workers = n
		}
	}
}

// WithLogger sets the logger used for evaluation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Kernel) {
		if logger != nil {
			k.logger = logger
		}
	}
}

// Kernel runs calculus operations against an Evaluator.
// It holds no mutable state and is safe for concurrent use when its evaluator is.
type Kernel struct {
	evaluator ports.Evaluator
	settings  Settings
	logger    *slog.Logger
}

// New creates a Kernel. The evaluator must not be nil.
func New(evaluator ports.Evaluator, opts ...Option) *Kernel {
	if evaluator == nil {
		panic("kernel: nil evaluator")
	}
	k := &Kernel{
		evaluator: evaluator,
		settings:  DefaultSettings(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Settings returns the effective tuning.
func (k *Kernel) Settings() Settings { return k.settings }

// Evaluate computes expr at p, or NaN when the evaluator fails.
func (k *Kernel) Evaluate(expr string, p domain.Point) float64 {
	return k.eval(expr, p)
}

func (k *Kernel) eval(expr string, p domain.Point) float64 {
	v, err := k.evaluator.Evaluate(expr, p.Bindings())
	if err != nil {
		k.logger.Debug("evaluation failed", "expr", expr, "at", p, "error", err)
		return domain.Undefined()
	}
	return domain.OrUndefined(v)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

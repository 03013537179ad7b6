package multivar

import (
	"log/slog"

	"github.com/aretw0/multivar/internal/kernel"
	"github.com/aretw0/multivar/pkg/adapters/lua"
	"github.com/aretw0/multivar/pkg/domain"
	"github.com/aretw0/multivar/pkg/ports"
)

// Version is the release of the module, overridden at build time with -ldflags.
var Version = "0.1.0-dev"

// Settings is the effective numerical tuning of a Kernel.
type Settings = kernel.Settings

// Kernel is the high-level entry point for the multivar library.
// It wraps the internal finite-difference kernel and an expression evaluator.
type Kernel struct {
	core      *kernel.Kernel
	evaluator ports.Evaluator
}

type options struct {
	evaluator  ports.Evaluator
	kernelOpts []kernel.Option
}

// Option defines a functional option for configuring the Kernel.
type Option func(*options)

// WithEvaluator injects the expression evaluator. The default is the sandboxed Lua evaluator.
func WithEvaluator(e ports.Evaluator) Option {
	return func(o *options) {
		o.evaluator = e
	}
}

// WithStep sets the finite-difference step h (default 1e-4).
func WithStep(h float64) Option {
	return func(o *options) {
		o.kernelOpts = append(o.kernelOpts, kernel.WithStep(h))
	}
}

// WithApproachRadius sets how far from the target limit paths start (default 0.05).
func WithApproachRadius(r float64) Option {
	return func(o *options) {
		o.kernelOpts = append(o.kernelOpts, kernel.WithApproachRadius(r))
	}
}

// WithFieldTolerance sets the cross-partial tolerance of TestConservative (default 1e-4).
func WithFieldTolerance(tol float64) Option {
	return func(o *options) {
		o.kernelOpts = append(o.kernelOpts, kernel.WithFieldTolerance(tol))
	}
}

// WithContourBand sets the near-level band of SampleContours (default 0.1).
func WithContourBand(band float64) Option {
	return func(o *options) {
		o.kernelOpts = append(o.kernelOpts, kernel.WithContourBand(band))
	}
}

// WithLagrangeTolerance sets the thresholds of CheckLagrange (default 0.1).
func WithLagrangeTolerance(tol float64) Option {
	return func(o *options) {
		o.kernelOpts = append(o.kernelOpts, kernel.WithLagrangeTolerance(tol))
	}
}

// WithPathSteps sets the default number of samples per limit path (default 20).
func WithPathSteps(n int) Option {
	return func(o *options) {
		o.kernelOpts = append(o.kernelOpts, kernel.WithPathSteps(n))
	}
}

// WithResolutions sets the default surface and contour grid resolutions (default 30 and 50).
func WithResolutions(surface, contour int) Option {
	return func(o *options) {
		o.kernelOpts = append(o.kernelOpts,
			kernel.WithSurfaceResolution(surface),
			kernel.WithContourResolution(contour),
		)
	}
}

// WithWorkers bounds concurrent evaluations (default GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.kernelOpts = append(o.kernelOpts, kernel.WithWorkers(n))
	}
}

// WithLogger sets a structured logger for evaluation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.kernelOpts = append(o.kernelOpts, kernel.WithLogger(logger))
	}
}

// New initializes a Kernel.
func New(opts ...Option) *Kernel {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.evaluator == nil {
		o.evaluator = lua.New()
	}
	return &Kernel{
		core:      kernel.New(o.evaluator, o.kernelOpts...),
		evaluator: o.evaluator,
	}
}

// Evaluator returns the expression evaluator used by the kernel.
func (k *Kernel) Evaluator() ports.Evaluator { return k.evaluator }

// Settings returns the effective numerical tuning.
func (k *Kernel) Settings() Settings { return k.core.Settings() }

// Evaluate computes expr at p. Failures yield NaN.
func (k *Kernel) Evaluate(expr string, p domain.Point) float64 {
	return k.core.Evaluate(expr, p)
}

// Partial approximates ∂f/∂v at p by central difference.
func (k *Kernel) Partial(expr string, v domain.Var, p domain.Point) float64 {
	return k.core.Partial(expr, v, p)
}

// PartialStep is Partial with an explicit step h.
func (k *Kernel) PartialStep(expr string, v domain.Var, p domain.Point, h float64) float64 {
	return k.core.PartialStep(expr, v, p, h)
}

// SecondPartial approximates ∂²f/∂v² at p.
func (k *Kernel) SecondPartial(expr string, v domain.Var, p domain.Point) float64 {
	return k.core.SecondPartial(expr, v, p)
}

// MixedPartial approximates ∂²f/∂a∂b at p.
func (k *Kernel) MixedPartial(expr string, a, b domain.Var, p domain.Point) float64 {
	return k.core.MixedPartial(expr, a, b, p)
}

// SecondPartialStep is SecondPartial with an explicit step h.
func (k *Kernel) SecondPartialStep(expr string, v domain.Var, p domain.Point, h float64) float64 {
	return k.core.SecondPartialStep(expr, v, p, h)
}

// MixedPartialStep is MixedPartial with an explicit step h.
func (k *Kernel) MixedPartialStep(expr string, a, b domain.Var, p domain.Point, h float64) float64 {
	return k.core.MixedPartialStep(expr, a, b, p, h)
}

// Gradient returns ∇f at p, one component per coordinate of p.
func (k *Kernel) Gradient(expr string, p domain.Point) domain.Vector {
	return k.core.Gradient(expr, p)
}

// DirectionalDerivative returns ∇f(p)·d. d is not normalized.
func (k *Kernel) DirectionalDerivative(expr string, p domain.Point, d domain.Vector) float64 {
	return k.core.DirectionalDerivative(expr, p, d)
}

// Normalize returns v/|v|, or the zero vector when |v| = 0.
func (k *Kernel) Normalize(v domain.Vector) domain.Vector {
	return k.core.Normalize(v)
}

// SamplePath approaches target along kind and estimates the limit of f.
// The approach is one-sided from the +r side of each path, and the last sample is f(target) at t = 1.
// The estimate is a heuristic over the last samples, not a proof of convergence.
func (k *Kernel) SamplePath(expr string, target domain.Point, kind domain.PathKind, steps int) (domain.SampleSeries, domain.LimitEstimate) {
	return k.core.SamplePath(expr, target, kind, steps)
}

// TestConservative checks ∂P/∂y = ∂Q/∂x at sample points. Finite evidence only.
func (k *Kernel) TestConservative(p, q string, points ...domain.Point) domain.FieldCheckResult {
	return k.core.TestConservative(p, q, points...)
}

// PotentialHint returns a textual potential hint for a field that passes TestConservative at points.
func (k *Kernel) PotentialHint(p, q string, points ...domain.Point) (string, bool) {
	return k.core.PotentialHint(p, q, points...)
}

// Hessian computes the 2-variable Hessian entries of f at p.
func (k *Kernel) Hessian(expr string, p domain.Point) domain.Hessian {
	return k.core.Hessian(expr, p)
}

// Classify applies the second-derivative test at p.
func (k *Kernel) Classify(expr string, p domain.Point) domain.HessianVerdict {
	return k.core.Classify(expr, p)
}

// SampleSurface samples z = f(x, y) on a regular grid.
func (k *Kernel) SampleSurface(expr string, xr, yr domain.Range, resolution int) []domain.SurfacePoint {
	return k.core.SampleSurface(expr, xr, yr, resolution)
}

// SampleContours collects grid points near each level of f.
func (k *Kernel) SampleContours(expr string, levels []float64, xr, yr domain.Range, resolution int) []domain.ContourLevel {
	return k.core.SampleContours(expr, levels, xr, yr, resolution)
}

// CheckLagrange measures ∇f = λ∇g and g = 0 at p.
func (k *Kernel) CheckLagrange(f, g string, p domain.Point, lambda float64) domain.LagrangeCheck {
	return k.core.CheckLagrange(f, g, p, lambda)
}

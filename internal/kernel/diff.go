package kernel

import (
	"github.com/aretw0/multivar/pkg/domain"
)

// Partial approximates ∂f/∂v at p with the central difference and the kernel step.
func (k *Kernel) Partial(expr string, v domain.Var, p domain.Point) float64 {
	return k.PartialStep(expr, v, p, k.settings.Step)
}

// PartialStep approximates ∂f/∂v at p as (f(p+h·e_v) − f(p−h·e_v)) / 2h.
// p itself is never evaluated. A non-positive or non-finite h falls back to the kernel step.
// Differentiating by z at a 2-D point treats z as 0.
func (k *Kernel) PartialStep(expr string, v domain.Var, p domain.Point, h float64) float64 {
	if !positive(h) {
		h = k.settings.Step
	}
	c := p.Coord(v)
	forward := k.eval(expr, p.With(v, c+h))
	backward := k.eval(expr, p.With(v, c-h))
	return domain.OrUndefined((forward - backward) / (2 * h))
}

// SecondPartial approximates ∂²f/∂v² at p with the kernel step.
func (k *Kernel) SecondPartial(expr string, v domain.Var, p domain.Point) float64 {
	return k.SecondPartialStep(expr, v, p, k.settings.Step)
}

// SecondPartialStep approximates ∂²f/∂v² at p as (f(+h) − 2f(p) + f(−h)) / h².
// A non-positive or non-finite h falls back to the kernel step.
func (k *Kernel) SecondPartialStep(expr string, v domain.Var, p domain.Point, h float64) float64 {
	if !positive(h) {
		h = k.settings.Step
	}
	c := p.Coord(v)
	forward := k.eval(expr, p.With(v, c+h))
	center := k.eval(expr, p)
	backward := k.eval(expr, p.With(v, c-h))
	return domain.OrUndefined((forward - 2*center + backward) / (h * h))
}

// MixedPartial approximates ∂²f/∂a∂b at p with the kernel step.
func (k *Kernel) MixedPartial(expr string, a, b domain.Var, p domain.Point) float64 {
	return k.MixedPartialStep(expr, a, b, p, k.settings.Step)
}

// MixedPartialStep approximates ∂²f/∂a∂b at p with the four-point stencil
// (f(+h,+h) − f(+h,−h) − f(−h,+h) + f(−h,−h)) / 4h². Equal variables reduce to SecondPartialStep.
// A non-positive or non-finite h falls back to the kernel step.
func (k *Kernel) MixedPartialStep(expr string, a, b domain.Var, p domain.Point, h float64) float64 {
	if !positive(h) {
		h = k.settings.Step
	}
	if a == b {
		return k.SecondPartialStep(expr, a, p, h)
	}
	ca, cb := p.Coord(a), p.Coord(b)
	at := func(da, db float64) float64 {
		return k.eval(expr, p.With(a, ca+da).With(b, cb+db))
	}
	sum := at(h, h) - at(h, -h) - at(-h, h) + at(-h, -h)
	return domain.OrUndefined(sum / (4 * h * h))
}

package kernel

import "github.com/aretw0/multivar/pkg/domain"

// Gradient returns the partials of expr for every coordinate present in p.
func (k *Kernel) Gradient(expr string, p domain.Point) domain.Vector {
	grad := domain.V2(k.Partial(expr, domain.VarX, p), k.Partial(expr, domain.VarY, p))
	if p.HasZ() {
		grad = grad.With(domain.VarZ, k.Partial(expr, domain.VarZ, p))
	}
	return grad
}

// DirectionalDerivative returns ∇f(p)·d over the coordinates both carry.
// d is used as given; callers wanting a unit rate normalize it first.
func (k *Kernel) DirectionalDerivative(expr string, p domain.Point, d domain.Vector) float64 {
	return domain.OrUndefined(k.Gradient(expr, p).Dot(d))
}

// Normalize returns v/|v|, or the zero vector when |v| = 0.
func (k *Kernel) Normalize(v domain.Vector) domain.Vector {
	return domain.Normalize(v)
}

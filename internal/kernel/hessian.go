package kernel

import "github.com/aretw0/multivar/pkg/domain"

// Hessian computes fxx, fyy and fxy of expr at p. A z coordinate is held fixed.
func (k *Kernel) Hessian(expr string, p domain.Point) domain.Hessian {
	return domain.Hessian{
		Fxx: k.SecondPartial(expr, domain.VarX, p),
		Fyy: k.SecondPartial(expr, domain.VarY, p),
		Fxy: k.MixedPartial(expr, domain.VarX, domain.VarY, p),
	}
}

// Classify applies the second-derivative test at p.
// p is assumed to be a stationary point; that is not checked.
func (k *Kernel) Classify(expr string, p domain.Point) domain.HessianVerdict {
	return k.Hessian(expr, p).Verdict()
}

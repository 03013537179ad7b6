package kernel

import (
	"math"

	"github.com/aretw0/multivar/pkg/domain"
)

// CheckLagrange measures how well ∇f = λ∇g holds at p and whether p lies on g = 0.
// The residual is Σ|∂f/∂v − λ·∂g/∂v| over the coordinates of p.
func (k *Kernel) CheckLagrange(f, g string, p domain.Point, lambda float64) domain.LagrangeCheck {
	gradF := k.Gradient(f, p)
	gradG := k.Gradient(g, p)

	residual := 0.0
	for _, v := range p.Vars() {
		residual += math.Abs(gradF.Coord(v) - lambda*gradG.Coord(v))
	}
	residual = domain.OrUndefined(residual)
	constraint := k.eval(g, p)
	tol := k.settings.LagrangeTolerance

	return domain.LagrangeCheck{
		GradF:        gradF,
		GradG:        gradG,
		Value:        k.eval(f, p),
		Constraint:   constraint,
		Residual:     residual,
		Satisfied:    residual < tol,
		OnConstraint: math.Abs(constraint) < tol,
	}
}

package domain

// LagrangeCheck reports how well ∇f = λ∇g holds at a candidate point.
type LagrangeCheck struct {
	GradF        Vector
	GradG        Vector
	Value        float64
	Constraint   float64
	Residual     float64
	Satisfied    bool
	OnConstraint bool
}

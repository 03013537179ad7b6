package domain

// HessianVerdict classifies a stationary point.
type HessianVerdict string

const (
	VerdictMaximum      HessianVerdict = "maximum"
	VerdictMinimum      HessianVerdict = "minimum"
	VerdictSaddle       HessianVerdict = "saddle"
	VerdictInconclusive HessianVerdict = "inconclusive"
)

// Hessian holds the second partials of a 2-variable function at one point.
type Hessian struct {
	Fxx float64
	Fyy float64
	Fxy float64
}

// Determinant is fxx·fyy − fxy².
func (h Hessian) Determinant() float64 {
	return h.Fxx*h.Fyy - h.Fxy*h.Fxy
}

// Verdict applies the second-derivative test. D == 0 or any NaN is inconclusive.
func (h Hessian) Verdict() HessianVerdict {
	d := h.Determinant()
	switch {
	case d > 0 && h.Fxx > 0:
		return VerdictMinimum
	case d > 0 && h.Fxx < 0:
		return VerdictMaximum
	case d < 0:
		return VerdictSaddle
	default:
		return VerdictInconclusive
	}
}

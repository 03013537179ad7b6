package service

import "github.com/aretw0/multivar/pkg/domain"

// Vector is the transport form of a domain.Vector. Undefined components are null.
type Vector struct {
	X domain.Number  `json:"x"`
	Y domain.Number  `json:"y"`
	Z *domain.Number `json:"z,omitempty"`
}

func vectorOf(v domain.Vector) Vector {
	out := Vector{X: domain.Number(v.X), Y: domain.Number(v.Y)}
	if v.Z != nil {
		z := domain.Number(*v.Z)
		out.Z = &z
	}
	return out
}

// ValueResponse carries a single scalar result.
type ValueResponse struct {
	Value domain.Number `json:"value"`
}

// GradientResponse carries ∇f and its magnitude.
type GradientResponse struct {
	Gradient  Vector        `json:"gradient"`
	Magnitude domain.Number `json:"magnitude"`
}

// DirectionalResponse carries the directional derivative and the vectors it came from.
type DirectionalResponse struct {
	Value     domain.Number `json:"value"`
	Gradient  Vector        `json:"gradient"`
	Direction Vector        `json:"direction"`
}

// NormalizeResponse carries the unit vector and the original magnitude.
type NormalizeResponse struct {
	Unit      Vector        `json:"unit"`
	Magnitude domain.Number `json:"magnitude"`
}

// PathLimit is the walk along one approach path.
type PathLimit struct {
	Path     domain.PathKind     `json:"path"`
	Exists   bool                `json:"exists"`
	Estimate domain.Number       `json:"estimate"`
	Samples  domain.SampleSeries `json:"samples"`
}

// LimitResponse carries one PathLimit per requested path.
// Agree is true when every path has an estimate and they differ by less than AgreementTolerance.
// Agreement is evidence that the limit exists, never proof.
type LimitResponse struct {
	Paths []PathLimit `json:"paths"`
	Agree bool        `json:"agree"`
}

// AgreementTolerance is the spread below which path estimates are said to agree.
const AgreementTolerance = 1e-2

// FieldCheck is the transport form of domain.FieldCheck.
type FieldCheck struct {
	At    domain.Point  `json:"at"`
	DPdy  domain.Number `json:"dp_dy"`
	DQdx  domain.Number `json:"dq_dx"`
	Match bool          `json:"match"`
}

// ConservativeResponse reports the cross-partial evidence for (P, Q).
type ConservativeResponse struct {
	Conservative bool         `json:"conservative"`
	Matches      int          `json:"matches"`
	Checks       []FieldCheck `json:"checks"`
	Potential    string       `json:"potential,omitempty"`
}

// ClassifyResponse carries the verdict and the Hessian behind it.
type ClassifyResponse struct {
	Verdict     domain.HessianVerdict `json:"verdict"`
	Value       domain.Number         `json:"value"`
	Fxx         domain.Number         `json:"fxx"`
	Fyy         domain.Number         `json:"fyy"`
	Fxy         domain.Number         `json:"fxy"`
	Determinant domain.Number         `json:"determinant"`
}

// SurfaceResponse carries the finite samples of the surface.
type SurfaceResponse struct {
	Resolution int                   `json:"resolution"`
	X          domain.Range          `json:"x"`
	Y          domain.Range          `json:"y"`
	Points     []domain.SurfacePoint `json:"points"`
}

// ContoursResponse carries the non-empty contour levels.
type ContoursResponse struct {
	Resolution int                   `json:"resolution"`
	X          domain.Range          `json:"x"`
	Y          domain.Range          `json:"y"`
	Levels     []domain.ContourLevel `json:"levels"`
}

// LagrangeResponse is the transport form of domain.LagrangeCheck.
type LagrangeResponse struct {
	GradF        Vector        `json:"grad_f"`
	GradG        Vector        `json:"grad_g"`
	Value        domain.Number `json:"value"`
	Constraint   domain.Number `json:"constraint"`
	Residual     domain.Number `json:"residual"`
	Satisfied    bool          `json:"satisfied"`
	OnConstraint bool          `json:"on_constraint"`
}

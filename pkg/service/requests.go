package service

import (
	"strings"

	"github.com/aretw0/multivar/pkg/domain"
)

// Limits bounds the work one request may ask for.
type Limits struct {
	MaxResolution int `json:"max_resolution"`
	MaxSteps      int `json:"max_steps"`
	MaxLevels     int `json:"max_levels"`
	MaxPoints     int `json:"max_points"`
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{MaxResolution: 200, MaxSteps: 1000, MaxLevels: 32, MaxPoints: 64}
}

// EvaluateRequest evaluates Expr at At.
type EvaluateRequest struct {
	Expr string       `json:"expr"`
	At   domain.Point `json:"at"`
}

func (r EvaluateRequest) validate(Limits) error {
	return firstError(requireExpr("expr", r.Expr), finitePoint("at", r.At))
}

// PartialRequest differentiates Expr by Var at At. Step 0 uses the kernel step.
type PartialRequest struct {
	Expr string       `json:"expr"`
	Var  string       `json:"var"`
	At   domain.Point `json:"at"`
	Step float64      `json:"step,omitempty"`
}

func (r PartialRequest) validate(Limits) error {
	_, err := domain.ParseVar(r.Var)
	return firstError(
		requireExpr("expr", r.Expr),
		err,
		finitePoint("at", r.At),
		nonNegative("step", r.Step),
	)
}

// GradientRequest computes ∇Expr at At.
type GradientRequest struct {
	Expr string       `json:"expr"`
	At   domain.Point `json:"at"`
}

func (r GradientRequest) validate(Limits) error {
	return firstError(requireExpr("expr", r.Expr), finitePoint("at", r.At))
}

// DirectionalRequest computes ∇Expr(At)·Direction, normalizing the direction first when asked.
type DirectionalRequest struct {
	Expr      string        `json:"expr"`
	At        domain.Point  `json:"at"`
	Direction domain.Vector `json:"direction"`
	Normalize bool          `json:"normalize,omitempty"`
}

func (r DirectionalRequest) validate(Limits) error {
	return firstError(
		requireExpr("expr", r.Expr),
		finitePoint("at", r.At),
		finitePoint("direction", domain.Point(r.Direction)),
	)
}

// NormalizeRequest scales Vector to unit length.
type NormalizeRequest struct {
	Vector domain.Vector `json:"vector"`
}

func (r NormalizeRequest) validate(Limits) error {
	return finitePoint("vector", domain.Point(r.Vector))
}

// LimitRequest approaches Target along Paths (all paths when empty) with Steps samples each.
type LimitRequest struct {
	Expr   string       `json:"expr"`
	Target domain.Point `json:"target"`
	Paths  []string     `json:"paths,omitempty"`
	Steps  int          `json:"steps,omitempty"`
}

func (r LimitRequest) validate(l Limits) error {
	errs := []error{
		requireExpr("expr", r.Expr),
		finitePoint("target", r.Target),
		bounded("steps", r.Steps, l.MaxSteps),
	}
	for _, p := range r.Paths {
		_, err := domain.ParsePathKind(p)
		errs = append(errs, err)
	}
	return firstError(errs...)
}

// ConservativeRequest tests the field (P, Q) at Points (the defaults when empty).
type ConservativeRequest struct {
	P      string         `json:"p"`
	Q      string         `json:"q"`
	Points []domain.Point `json:"points,omitempty"`
}

func (r ConservativeRequest) validate(l Limits) error {
	errs := []error{
		requireExpr("p", r.P),
		requireExpr("q", r.Q),
		bounded("points", len(r.Points), l.MaxPoints),
	}
	for _, p := range r.Points {
		errs = append(errs, finitePoint("points", p))
	}
	return firstError(errs...)
}

// ClassifyRequest classifies the stationary point At of Expr.
type ClassifyRequest struct {
	Expr string       `json:"expr"`
	At   domain.Point `json:"at"`
}

func (r ClassifyRequest) validate(Limits) error {
	return firstError(requireExpr("expr", r.Expr), finitePoint("at", r.At))
}

// SurfaceRequest samples Expr over X × Y. Unset ranges default to [-5, 5].
type SurfaceRequest struct {
	Expr       string       `json:"expr"`
	X          domain.Range `json:"x"`
	Y          domain.Range `json:"y"`
	Resolution int          `json:"resolution,omitempty"`
}

func (r SurfaceRequest) validate(l Limits) error {
	return firstError(
		requireExpr("expr", r.Expr),
		checkRange("x", r.X),
		checkRange("y", r.Y),
		bounded("resolution", r.Resolution, l.MaxResolution),
	)
}

// ContoursRequest collects grid points near each of Levels.
type ContoursRequest struct {
	Expr       string       `json:"expr"`
	Levels     []float64    `json:"levels"`
	X          domain.Range `json:"x"`
	Y          domain.Range `json:"y"`
	Resolution int          `json:"resolution,omitempty"`
}

func (r ContoursRequest) validate(l Limits) error {
	errs := []error{
		requireExpr("expr", r.Expr),
		checkRange("x", r.X),
		checkRange("y", r.Y),
		bounded("resolution", r.Resolution, l.MaxResolution),
	}
	if len(r.Levels) == 0 {
		errs = append(errs, domain.Invalidf("levels: at least one level is required"))
	}
	errs = append(errs, bounded("levels", len(r.Levels), l.MaxLevels))
	for _, level := range r.Levels {
		if !domain.Defined(level) {
			errs = append(errs, domain.Invalidf("levels: %v is not finite", level))
		}
	}
	return firstError(errs...)
}

// LagrangeRequest checks ∇F = Lambda·∇G and G = 0 at At.
type LagrangeRequest struct {
	F      string       `json:"f"`
	G      string       `json:"g"`
	At     domain.Point `json:"at"`
	Lambda float64      `json:"lambda"`
}

func (r LagrangeRequest) validate(Limits) error {
	errs := []error{
		requireExpr("f", r.F),
		requireExpr("g", r.G),
		finitePoint("at", r.At),
	}
	if !domain.Defined(r.Lambda) {
		errs = append(errs, domain.Invalidf("lambda must be finite"))
	}
	return firstError(errs...)
}

func requireExpr(field, expr string) error {
	if strings.TrimSpace(expr) == "" {
		return domain.Invalidf("%s: expression is required", field)
	}
	return nil
}

func finitePoint(field string, p domain.Point) error {
	if !domain.Defined(p.X) || !domain.Defined(p.Y) || (p.Z != nil && !domain.Defined(*p.Z)) {
		return domain.Invalidf("%s: coordinates must be finite", field)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if v < 0 || !domain.Defined(v) {
		return domain.Invalidf("%s must be a finite non-negative number", field)
	}
	return nil
}

func bounded(field string, n, limit int) error {
	if n < 0 || n > limit {
		return domain.Invalidf("%s must be between 0 and %d", field, limit)
	}
	return nil
}

func checkRange(field string, r domain.Range) error {
	if r.IsZero() || r.Valid() {
		return nil
	}
	return domain.Invalidf("%s: range must be finite with min below max", field)
}

func rangeOrDefault(r domain.Range) domain.Range {
	if r.IsZero() {
		return domain.DefaultRange
	}
	return r
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

package service

import (
	"context"
	"math"

	"github.com/aretw0/multivar/pkg/domain"
)

// Operation names accepted by Dispatch.
const (
	OpEvaluate     = "evaluate"
	OpPartial      = "partial"
	OpGradient     = "gradient"
	OpDirectional  = "directional"
	OpNormalize    = "normalize"
	OpLimit        = "limit"
	OpConservative = "conservative"
	OpClassify     = "classify"
	OpSurface      = "surface"
	OpContours     = "contours"
	OpLagrange     = "lagrange"
)

// Evaluate computes f at a point.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (ValueResponse, error) {
	return execute(ctx, s, OpEvaluate, req, func(r EvaluateRequest) ValueResponse {
		return ValueResponse{Value: domain.Number(s.kernel.Evaluate(r.Expr, r.At))}
	})
}

// Partial computes one first-order partial derivative.
func (s *Service) Partial(ctx context.Context, req PartialRequest) (ValueResponse, error) {
	return execute(ctx, s, OpPartial, req, func(r PartialRequest) ValueResponse {
		v, _ := domain.ParseVar(r.Var)
		return ValueResponse{Value: domain.Number(s.kernel.PartialStep(r.Expr, v, r.At, r.Step))}
	})
}

// Gradient computes ∇f at a point.
func (s *Service) Gradient(ctx context.Context, req GradientRequest) (GradientResponse, error) {
	return execute(ctx, s, OpGradient, req, func(r GradientRequest) GradientResponse {
		grad := s.kernel.Gradient(r.Expr, r.At)
		return GradientResponse{Gradient: vectorOf(grad), Magnitude: domain.Number(grad.Magnitude())}
	})
}

// Directional computes a directional derivative.
func (s *Service) Directional(ctx context.Context, req DirectionalRequest) (DirectionalResponse, error) {
	return execute(ctx, s, OpDirectional, req, func(r DirectionalRequest) DirectionalResponse {
		d := r.Direction
		if r.Normalize {
			d = s.kernel.Normalize(d)
		}
		return DirectionalResponse{
			Value:     domain.Number(s.kernel.DirectionalDerivative(r.Expr, r.At, d)),
			Gradient:  vectorOf(s.kernel.Gradient(r.Expr, r.At)),
			Direction: vectorOf(d),
		}
	})
}

// Normalize scales a vector to unit length.
func (s *Service) Normalize(ctx context.Context, req NormalizeRequest) (NormalizeResponse, error) {
	return execute(ctx, s, OpNormalize, req, func(r NormalizeRequest) NormalizeResponse {
		return NormalizeResponse{
			Unit:      vectorOf(s.kernel.Normalize(r.Vector)),
			Magnitude: domain.Number(r.Vector.Magnitude()),
		}
	})
}

// Limit walks toward a target along one or more paths.
func (s *Service) Limit(ctx context.Context, req LimitRequest) (LimitResponse, error) {
	return execute(ctx, s, OpLimit, req, func(r LimitRequest) LimitResponse {
		kinds := domain.PathKinds()
		if len(r.Paths) > 0 {
			kinds = kinds[:0:0]
			for _, p := range r.Paths {
				kind, _ := domain.ParsePathKind(p)
				kinds = append(kinds, kind)
			}
		}

		resp := LimitResponse{Paths: make([]PathLimit, 0, len(kinds)), Agree: true}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, kind := range kinds {
			series, est := s.kernel.SamplePath(r.Expr, r.Target, kind, r.Steps)
			resp.Paths = append(resp.Paths, PathLimit{
				Path:     kind,
				Exists:   est.Exists,
				Estimate: domain.Number(est.Value),
				Samples:  series,
			})
			if !est.Exists {
				resp.Agree = false
				continue
			}
			lo, hi = math.Min(lo, est.Value), math.Max(hi, est.Value)
		}
		if resp.Agree && hi-lo >= AgreementTolerance {
			resp.Agree = false
		}
		return resp
	})
}

// Conservative tests whether (P, Q) looks conservative.
func (s *Service) Conservative(ctx context.Context, req ConservativeRequest) (ConservativeResponse, error) {
	return execute(ctx, s, OpConservative, req, func(r ConservativeRequest) ConservativeResponse {
		result := s.kernel.TestConservative(r.P, r.Q, r.Points...)
		resp := ConservativeResponse{
			Conservative: result.Conservative,
			Matches:      result.Matches(),
			Checks:       make([]FieldCheck, 0, len(result.Checks)),
		}
		for _, c := range result.Checks {
			resp.Checks = append(resp.Checks, FieldCheck{
				At:    c.At,
				DPdy:  domain.Number(c.DPdy),
				DQdx:  domain.Number(c.DQdx),
				Match: c.Match,
			})
		}
		if hint, ok := result.PotentialHint(r.P); ok {
			resp.Potential = hint
		}
		return resp
	})
}

// Classify classifies a stationary point with the second-derivative test.
func (s *Service) Classify(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error) {
	return execute(ctx, s, OpClassify, req, func(r ClassifyRequest) ClassifyResponse {
		h := s.kernel.Hessian(r.Expr, r.At)
		return ClassifyResponse{
			Verdict:     h.Verdict(),
			Value:       domain.Number(s.kernel.Evaluate(r.Expr, r.At)),
			Fxx:         domain.Number(h.Fxx),
			Fyy:         domain.Number(h.Fyy),
			Fxy:         domain.Number(h.Fxy),
			Determinant: domain.Number(h.Determinant()),
		}
	})
}

// Surface samples z = f(x, y) over a grid.
func (s *Service) Surface(ctx context.Context, req SurfaceRequest) (SurfaceResponse, error) {
	return execute(ctx, s, OpSurface, req, func(r SurfaceRequest) SurfaceResponse {
		res := r.Resolution
		if res == 0 {
			res = s.kernel.Settings().SurfaceResolution
		}
		xr, yr := rangeOrDefault(r.X), rangeOrDefault(r.Y)
		return SurfaceResponse{
			Resolution: res,
			X:          xr,
			Y:          yr,
			Points:     s.kernel.SampleSurface(r.Expr, xr, yr, res),
		}
	})
}

// Contours collects grid points near each requested level.
func (s *Service) Contours(ctx context.Context, req ContoursRequest) (ContoursResponse, error) {
	return execute(ctx, s, OpContours, req, func(r ContoursRequest) ContoursResponse {
		res := r.Resolution
		if res == 0 {
			res = s.kernel.Settings().ContourResolution
		}
		xr, yr := rangeOrDefault(r.X), rangeOrDefault(r.Y)
		return ContoursResponse{
			Resolution: res,
			X:          xr,
			Y:          yr,
			Levels:     s.kernel.SampleContours(r.Expr, r.Levels, xr, yr, res),
		}
	})
}

// Lagrange checks the Lagrange conditions at a candidate point.
func (s *Service) Lagrange(ctx context.Context, req LagrangeRequest) (LagrangeResponse, error) {
	return execute(ctx, s, OpLagrange, req, func(r LagrangeRequest) LagrangeResponse {
		c := s.kernel.CheckLagrange(r.F, r.G, r.At, r.Lambda)
		return LagrangeResponse{
			GradF:        vectorOf(c.GradF),
			GradG:        vectorOf(c.GradG),
			Value:        domain.Number(c.Value),
			Constraint:   domain.Number(c.Constraint),
			Residual:     domain.Number(c.Residual),
			Satisfied:    c.Satisfied,
			OnConstraint: c.OnConstraint,
		}
	})
}

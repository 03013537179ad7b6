package kernel

import (
	"math"

	"github.com/aretw0/multivar/pkg/domain"
)

// TestConservative compares ∂P/∂y with ∂Q/∂x at each point (the defaults when none are given).
// The field is reported conservative when every point matches within the field tolerance.
// This is a finite-sample heuristic and never a proof.
func (k *Kernel) TestConservative(p, q string, points ...domain.Point) domain.FieldCheckResult {
	if len(points) == 0 {
		points = domain.DefaultFieldPoints()
	}

	checks := make([]domain.FieldCheck, len(points))
	k.forEach(len(points), func(i int) {
		at := points[i]
		dPdy := k.Partial(p, domain.VarY, at)
		dQdx := k.Partial(q, domain.VarX, at)
		checks[i] = domain.FieldCheck{
			At:    at,
			DPdy:  dPdy,
			DQdx:  dQdx,
			Match: math.Abs(dPdy-dQdx) < k.settings.FieldTolerance,
		}
	})

	result := domain.FieldCheckResult{Checks: checks, Conservative: true}
	for _, c := range checks {
		if !c.Match {
			result.Conservative = false
			break
		}
	}
	return result
}

// PotentialHint returns a textual starting point for a potential function of (P, Q).
// It is only offered when the conservative test passes at points (the defaults when none are given).
func (k *Kernel) PotentialHint(p, q string, points ...domain.Point) (string, bool) {
	return k.TestConservative(p, q, points...).PotentialHint(p)
}

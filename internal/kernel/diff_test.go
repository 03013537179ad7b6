package kernel_test

import (
	"math"
	"testing"

	"github.com/aretw0/multivar/internal/kernel"
	"github.com/aretw0/multivar/pkg/adapters/memory"
	"github.com/aretw0/multivar/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestPartial(t *testing.T) {
	k := newKernel()
	p := domain.P2(1, 2)

	assert.InDelta(t, 4.0, k.Partial("x^2*y+y^3", domain.VarX, p), 1e-6)
	assert.InDelta(t, 13.0, k.Partial("x^2*y+y^3", domain.VarY, p), 1e-6)
}

func TestPartial_ZOnPlanarPointReadsZeroZ(t *testing.T) {
	k := newKernel()
	assert.InDelta(t, 1.0, k.Partial("x+z", domain.VarZ, domain.P2(3, 4)), 1e-9)
}

func TestPartial_Undefined(t *testing.T) {
	k := newKernel()
	assert.True(t, math.IsNaN(k.Partial("1/x", domain.VarY, domain.P2(0, 1))))
	assert.True(t, math.IsNaN(k.Partial("missing", domain.VarX, domain.P2(0, 1))))
}

func TestPartialStep_InvalidStepFallsBack(t *testing.T) {
	k := newKernel()
	p := domain.P2(1, 2)
	want := k.Partial("x^2*y+y^3", domain.VarX, p)

	for _, h := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.Equal(t, want, k.PartialStep("x^2*y+y^3", domain.VarX, p, h), "h=%v", h)
	}
}

func TestPartial_NeverEvaluatesTheCenter(t *testing.T) {
	calls := 0
	stub := memory.NewEvaluator(map[string]memory.Func{
		"f": func(vars map[string]float64) (float64, error) {
			calls++
			if vars["x"] == 0 {
				return math.NaN(), nil
			}
			return vars["x"], nil
		},
	})
	k := kernel.New(stub, kernel.WithWorkers(1))

	assert.InDelta(t, 1.0, k.Partial("f", domain.VarX, domain.P2(0, 0)), 1e-9)
	assert.Equal(t, 2, calls)
}

func TestSecondAndMixedPartials(t *testing.T) {
	k := newKernel()
	p := domain.P2(1, 2)

	assert.InDelta(t, 4.0, k.SecondPartial("x^2*y+y^3", domain.VarX, p), 1e-3)
	assert.InDelta(t, 12.0, k.SecondPartial("x^2*y+y^3", domain.VarY, p), 1e-3)
	assert.InDelta(t, 2.0, k.MixedPartial("x^2*y+y^3", domain.VarX, domain.VarY, p), 1e-3)
	assert.InDelta(t, 1.0, k.MixedPartial("x*y", domain.VarY, domain.VarX, p), 1e-6)
	assert.Equal(t,
		k.SecondPartial("x^2+y^2", domain.VarX, p),
		k.MixedPartial("x^2+y^2", domain.VarX, domain.VarX, p))
}

func TestSecondAndMixedPartialsWithStep(t *testing.T) {
	k := newKernel()
	p := domain.P2(1, 2)

	assert.InDelta(t, 4.0, k.SecondPartialStep("x^2*y+y^3", domain.VarX, p, 1e-2), 1e-6)
	assert.InDelta(t, 12.0, k.SecondPartialStep("x^2*y+y^3", domain.VarY, p, 1e-2), 1e-6)
	assert.InDelta(t, 2.0, k.MixedPartialStep("x^2*y+y^3", domain.VarX, domain.VarY, p, 1e-2), 1e-6)
	assert.Equal(t,
		k.SecondPartialStep("x^2+y^2", domain.VarX, p, 1e-2),
		k.MixedPartialStep("x^2+y^2", domain.VarX, domain.VarX, p, 1e-2))

	for _, h := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.Equal(t, k.SecondPartial("x^2*y+y^3", domain.VarY, p), k.SecondPartialStep("x^2*y+y^3", domain.VarY, p, h))
		assert.Equal(t, k.MixedPartial("x*y", domain.VarX, domain.VarY, p), k.MixedPartialStep("x*y", domain.VarX, domain.VarY, p, h))
	}
}

package kernel_test

import (
	"testing"

	"github.com/aretw0/multivar/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	k := newKernel()
	origin := domain.P2(0, 0)

	tests := []struct {
		expr string
		want domain.HessianVerdict
	}{
		{"x^2+y^2", domain.VerdictMinimum},
		{"-(x^2+y^2)", domain.VerdictMaximum},
		{"x^2-y^2", domain.VerdictSaddle},
		{"x^3", domain.VerdictInconclusive},
		{"missing", domain.VerdictInconclusive},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Classify(tt.expr, origin))
		})
	}
}

func TestHessian(t *testing.T) {
	k := newKernel()

	h := k.Hessian("x^2+y^2", domain.P2(0, 0))
	assert.InDelta(t, 2.0, h.Fxx, 1e-3)
	assert.InDelta(t, 2.0, h.Fyy, 1e-3)
	assert.InDelta(t, 0.0, h.Fxy, 1e-3)
	assert.InDelta(t, 4.0, h.Determinant(), 1e-2)
}

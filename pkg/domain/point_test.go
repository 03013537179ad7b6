package domain_test

import (
	"math"
	"testing"

	"github.com/aretw0/multivar/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ZeroVector(t *testing.T) {
	assert.Equal(t, domain.V2(0, 0), domain.Normalize(domain.V2(0, 0)))
	assert.Equal(t, domain.V3(0, 0, 0), domain.Normalize(domain.V3(0, 0, 0)))
}

func TestNormalize_UnitMagnitude(t *testing.T) {
	u := domain.Normalize(domain.V2(3, 4))
	assert.InDelta(t, 0.6, u.X, 1e-12)
	assert.InDelta(t, 0.8, u.Y, 1e-12)
	assert.InDelta(t, 1.0, u.Magnitude(), 1e-12)

	w := domain.Normalize(domain.V3(1, 2, 2))
	require.True(t, w.HasZ())
	assert.InDelta(t, 2.0/3.0, *w.Z, 1e-12)
	assert.InDelta(t, 1.0, w.Magnitude(), 1e-12)
}

func TestVector_DotUsesSharedCoordinates(t *testing.T) {
	a := domain.V3(1, 2, 3)
	b := domain.V2(4, 5)
	assert.Equal(t, 14.0, a.Dot(b), "z is ignored when only one side carries it")
	assert.Equal(t, 14.0+9.0, a.Dot(domain.V3(4, 5, 3)))
}

func TestPoint_WithDoesNotMutate(t *testing.T) {
	p := domain.P3(1, 2, 3)
	q := p.With(domain.VarZ, 10)

	assert.Equal(t, 3.0, *p.Z)
	assert.Equal(t, 10.0, *q.Z)

	flat := domain.P2(1, 2)
	lifted := flat.With(domain.VarZ, 0.5)
	assert.False(t, flat.HasZ())
	assert.True(t, lifted.HasZ())
}

func TestPoint_CoordAbsentZReadsZero(t *testing.T) {
	assert.Equal(t, 0.0, domain.P2(1, 2).Coord(domain.VarZ))
	assert.True(t, math.IsNaN(domain.P2(1, 2).Coord(domain.Var("w"))))
}

func TestPoint_Bindings(t *testing.T) {
	assert.Equal(t, map[string]float64{"x": 1, "y": 2}, domain.P2(1, 2).Bindings())
	assert.Equal(t, map[string]float64{"x": 1, "y": 2, "z": 3}, domain.P3(1, 2, 3).Bindings())
}

func TestParsePoint(t *testing.T) {
	p, err := domain.ParsePoint("1, -2.5")
	require.NoError(t, err)
	assert.Equal(t, domain.P2(1, -2.5), p)

	p, err = domain.ParsePoint("(0,0,1)")
	require.NoError(t, err)
	assert.Equal(t, domain.P3(0, 0, 1), p)

	_, err = domain.ParsePoint("1")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = domain.ParsePoint("a,b")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestParseVar(t *testing.T) {
	v, err := domain.ParseVar(" Y ")
	require.NoError(t, err)
	assert.Equal(t, domain.VarY, v)

	_, err = domain.ParseVar("t")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

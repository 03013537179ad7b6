package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aretw0/multivar/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UndefinedEncodesAsNull(t *testing.T) {
	data, err := json.Marshal(struct {
		A domain.Number `json:"a"`
		B domain.Number `json:"b"`
		C domain.Number `json:"c"`
	}{domain.Number(math.NaN()), domain.Number(math.Inf(1)), 2.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":null,"c":2.5}`, string(data))
}

func TestNumber_NullDecodesAsUndefined(t *testing.T) {
	var out struct {
		A domain.Number `json:"a"`
		B domain.Number `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":null,"b":-1}`), &out))
	assert.False(t, out.A.IsDefined())
	assert.Equal(t, -1.0, out.B.Float64())
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "---", domain.FormatNumber(math.NaN(), 4))
	assert.Equal(t, "∞", domain.FormatNumber(math.Inf(1), 4))
	assert.Equal(t, "-∞", domain.FormatNumber(math.Inf(-1), 4))
	assert.Equal(t, "3.1416", domain.FormatNumber(math.Pi, 4))
	assert.Equal(t, "2.00", domain.FormatNumber(2, 2))
}

func TestHessian_Verdict(t *testing.T) {
	assert.Equal(t, domain.VerdictMinimum, domain.Hessian{Fxx: 2, Fyy: 2}.Verdict())
	assert.Equal(t, domain.VerdictMaximum, domain.Hessian{Fxx: -2, Fyy: -2}.Verdict())
	assert.Equal(t, domain.VerdictSaddle, domain.Hessian{Fxx: 2, Fyy: -2}.Verdict())
	assert.Equal(t, domain.VerdictInconclusive, domain.Hessian{Fxx: 1, Fyy: 1, Fxy: 1}.Verdict())
	assert.Equal(t, domain.VerdictInconclusive, domain.Hessian{Fxx: math.NaN(), Fyy: 1}.Verdict())
}

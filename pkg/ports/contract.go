package ports

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/multivar/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunEvaluatorContract runs a suite of tests to verify that an Evaluator implementation
// adheres to the expression language the kernel relies on.
func RunEvaluatorContract(t *testing.T, eval Evaluator) {
	xy := map[string]float64{"x": 1.5, "y": -2}

	t.Run("Arithmetic", func(t *testing.T) {
		cases := map[string]float64{
			"x + y":         -0.5,
			"x - y":         3.5,
			"x * y":         -3,
			"x / y":         -0.75,
			"y ^ 2":         4,
			"-x":            -1.5,
			"-(x + y) * 2":  1,
			"2 ^ 3 ^ 2":     512,
			"x^2*y + y^3":   -12.5,
			"(1 + 2) * 3.5": 10.5,
		}
		for expr, want := range cases {
			got, err := eval.Evaluate(expr, xy)
			require.NoError(t, err, expr)
			assert.InDelta(t, want, got, 1e-12, expr)
		}
	})

	t.Run("Functions", func(t *testing.T) {
		cases := map[string]float64{
			"sin(0)":  0,
			"cos(0)":  1,
			"tan(0)":  0,
			"exp(0)":  1,
			"sqrt(9)": 3,
			"log(1)":  0,
		}
		for expr, want := range cases {
			got, err := eval.Evaluate(expr, nil)
			require.NoError(t, err, expr)
			assert.InDelta(t, want, got, 1e-12, expr)
		}
	})

	t.Run("Unused Bindings Ignored", func(t *testing.T) {
		got, err := eval.Evaluate("x + 1", map[string]float64{"x": 1, "y": 5, "z": 7})
		require.NoError(t, err)
		assert.Equal(t, 2.0, got)
	})

	t.Run("Bindings Do Not Leak Between Calls", func(t *testing.T) {
		_, err := eval.Evaluate("z", map[string]float64{"z": 3})
		require.NoError(t, err)
		_, err = eval.Evaluate("z", map[string]float64{"x": 1})
		assert.ErrorIs(t, err, domain.ErrEvaluation)
	})

	t.Run("Failures", func(t *testing.T) {
		for _, expr := range []string{"x + w", "1 / 0", "x / (y + 2)", "(x +", "x ** ** 2", ""} {
			_, err := eval.Evaluate(expr, xy)
			assert.ErrorIs(t, err, domain.ErrEvaluation, "expression %q", expr)
		}
	})

	t.Run("Concurrent Use", func(t *testing.T) {
		errs := make(chan error, 16)
		for i := 0; i < 16; i++ {
			go func() {
				v, err := eval.Evaluate("x * 2", map[string]float64{"x": float64(i)})
				if err == nil && v != float64(2*i) {
					err = fmt.Errorf("got %v for x=%d", v, i)
				}
				errs <- err
			}()
		}
		for i := 0; i < 16; i++ {
			assert.NoError(t, <-errs)
		}
	})
}

// RunResultCacheContract verifies that a ResultCache implementation adheres to the
// interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405.000000000")

	t.Run("Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, key+"-missing")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, []byte(`{"value":4}`)))
		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, `{"value":4}`, string(got))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, []byte(`{"value":5}`)))
		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, `{"value":5}`, string(got))
	})

	t.Run("Stored Bytes Are Isolated", func(t *testing.T) {
		buf := []byte(`{"value":6}`)
		require.NoError(t, cache.Set(ctx, key, buf))
		buf[1] = 'X'
		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, `{"value":6}`, string(got))
	})
}

// RunJournalContract verifies that a Journal implementation adheres to the interface
// contract. The journal must be empty when the suite starts.
func RunJournalContract(t *testing.T, journal Journal) {
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Empty", func(t *testing.T) {
		entries, err := journal.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Record and Recent", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			err := journal.Record(ctx, JournalEntry{
				ID:        fmt.Sprintf("entry-%d", i),
				Operation: "partial",
				Request:   json.RawMessage(fmt.Sprintf(`{"i":%d}`, i)),
				Response:  json.RawMessage(`{"value":4}`),
				Cached:    i == 2,
				Duration:  time.Duration(i) * time.Millisecond,
				At:        base.Add(time.Duration(i) * time.Second),
			})
			require.NoError(t, err)
		}

		entries, err := journal.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "entry-2", entries[0].ID, "newest first")
		assert.Equal(t, "entry-1", entries[1].ID)
		assert.True(t, entries[0].Cached)
		assert.Equal(t, "partial", entries[0].Operation)
		assert.JSONEq(t, `{"i":2}`, string(entries[0].Request))
		assert.JSONEq(t, `{"value":4}`, string(entries[0].Response))
		assert.Equal(t, 2*time.Millisecond, entries[0].Duration)
		assert.True(t, base.Add(2*time.Second).Equal(entries[0].At))
	})

	t.Run("Limit Larger Than Journal", func(t *testing.T) {
		entries, err := journal.Recent(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}

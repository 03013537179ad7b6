package memory

import (
	"math"
	"sync/atomic"

	"github.com/aretw0/multivar/pkg/domain"
)

// Func computes an expression directly in Go.
type Func func(vars map[string]float64) (float64, error)

// Evaluator is a stub ports.Evaluator backed by Go functions keyed by expression text.
// It lets kernel tests run without an expression language.
type Evaluator struct {
	funcs map[string]Func
	calls atomic.Int64
}

// NewEvaluator creates an Evaluator from a fixed table of expressions.
func NewEvaluator(funcs map[string]Func) *Evaluator {
	copied := make(map[string]Func, len(funcs))
	for k, v := range funcs {
		copied[k] = v
	}
	return &Evaluator{funcs: copied}
}

// Evaluate looks expr up and applies it. Non-finite results are reported as errors,
// matching the contract of real evaluators.
func (e *Evaluator) Evaluate(expr string, bindings map[string]float64) (float64, error) {
	e.calls.Add(1)
	fn, ok := e.funcs[expr]
	if !ok {
		return math.NaN(), domain.NewEvaluationError(expr, "unknown expression", nil)
	}
	v, err := fn(bindings)
	if err != nil {
		return math.NaN(), domain.NewEvaluationError(expr, "stub failed", err)
	}
	if !domain.Defined(v) {
		return math.NaN(), domain.NewEvaluationError(expr, "result is not finite", nil)
	}
	return v, nil
}

// Calls reports how many evaluations were requested.
func (e *Evaluator) Calls() int64 { return e.calls.Load() }

// Var reads a binding, failing like an unbound variable when it is absent.
func Var(vars map[string]float64, name string) (float64, error) {
	v, ok := vars[name]
	if !ok {
		return math.NaN(), domain.NewEvaluationError(name, "unbound variable", nil)
	}
	return v, nil
}

// XY adapts a two-variable function into a Func.
func XY(fn func(x, y float64) float64) Func {
	return func(vars map[string]float64) (float64, error) {
		x, err := Var(vars, "x")
		if err != nil {
			return math.NaN(), err
		}
		y, err := Var(vars, "y")
		if err != nil {
			return math.NaN(), err
		}
		return fn(x, y), nil
	}
}

// XYZ adapts a three-variable function into a Func.
func XYZ(fn func(x, y, z float64) float64) Func {
	return func(vars map[string]float64) (float64, error) {
		x, err := Var(vars, "x")
		if err != nil {
			return math.NaN(), err
		}
		y, err := Var(vars, "y")
		if err != nil {
			return math.NaN(), err
		}
		z, err := Var(vars, "z")
		if err != nil {
			return math.NaN(), err
		}
		return fn(x, y, z), nil
	}
}

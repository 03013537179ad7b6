package ports

// Evaluator evaluates an expression of named real variables.
//
// Implementations must support + - * / ^, unary minus, parentheses and at least the
// functions sin, cos, tan, exp, sqrt and log. Bindings the expression does not reference
// are ignored. An unbound variable, a division by zero or malformed syntax must produce an
// error wrapping domain.ErrEvaluation, never a panic.
//
// Evaluators must be safe for concurrent use: the kernel evaluates grid points in parallel.
type Evaluator interface {
	Evaluate(expr string, bindings map[string]float64) (float64, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(expr string, bindings map[string]float64) (float64, error)

// Evaluate calls f(expr, bindings).
func (f EvaluatorFunc) Evaluate(expr string, bindings map[string]float64) (float64, error) {
	return f(expr, bindings)
}

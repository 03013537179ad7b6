package domain

import (
	"errors"
	"fmt"
)

// ErrEvaluation is the sentinel wrapped by every expression evaluator failure.
var ErrEvaluation = errors.New("evaluation failed")

// ErrInvalidRequest is returned by transports when a request cannot be served as given.
var ErrInvalidRequest = errors.New("invalid request")

// ErrUnknownOperation is returned when an operation name does not match any kernel operation.
var ErrUnknownOperation = errors.New("unknown operation")

// ErrCacheMiss is returned by a ResultCache when the key is not present.
var ErrCacheMiss = errors.New("cache miss")

// EvaluationError describes why an expression could not be evaluated at a point.
// It matches ErrEvaluation with errors.Is.
type EvaluationError struct {
	Expr   string
	Reason string
	Err    error
}

// NewEvaluationError builds an EvaluationError for expr.
func NewEvaluationError(expr, reason string, cause error) *EvaluationError {
	return &EvaluationError{Expr: expr, Reason: reason, Err: cause}
}

func (e *EvaluationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evaluate %q: %s: %v", e.Expr, e.Reason, e.Err)
	}
	return fmt.Sprintf("evaluate %q: %s", e.Expr, e.Reason)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrEvaluation.
func (e *EvaluationError) Is(target error) bool { return target == ErrEvaluation }

// Invalidf wraps ErrInvalidRequest with a formatted reason.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

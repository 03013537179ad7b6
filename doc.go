/*
Package multivar is a finite-difference calculus kernel for scalar functions of two or three
real variables.

Given an expression such as "x^2*y + y^3", the kernel computes partial derivatives, gradients,
directional derivatives, path-wise limit estimates, conservative-field tests and Hessian
classification of critical points. It also samples surfaces and near-level contour sets.
Everything is numerical: there is no symbolic differentiation.

# Concept

The kernel never parses expressions itself. It binds variable values and asks an Evaluator
(pkg/ports) for f(x, y[, z]). The default evaluator compiles expressions into sandboxed Lua
programs (pkg/adapters/lua); tests and embedders can inject any other implementation.

All operations are total. An evaluator failure becomes NaN, an absent limit is reported as
"no limit along this path" and a degenerate Hessian is "inconclusive". None of these are errors.

# Heuristics

Limits, conservative-field checks and contours are finite-sample approximations:

  - SamplePath averages the last five samples of a path walk. Agreement is evidence, not proof.
  - TestConservative compares cross partials at a handful of points.
  - SampleContours keeps grid points within a band of each level; it does not trace curves.

# Usage

	k := multivar.New()

	grad := k.Gradient("x^2*y + y^3", domain.P2(1, 2))
	fmt.Println(grad) // ≈ (4, 13)

	_, est := k.SamplePath("x*y/(x^2+y^2)", domain.P2(0, 0), domain.PathDiagonal, 0)
	fmt.Println(est) // ≈ 0.5

	fmt.Println(k.Classify("x^2 - y^2", domain.P2(0, 0))) // saddle

# Hosts

The pkg/service package wraps the kernel with validation, caching, journaling, metrics and
tracing. It is served over HTTP (pkg/adapters/http), MCP (pkg/adapters/mcp) and the multivar CLI.
*/
package multivar

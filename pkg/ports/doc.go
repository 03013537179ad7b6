/*
Package ports defines the driven ports (interfaces) of the multivar kernel.

These interfaces decouple the numerical core from external implementations, allowing the
kernel to work with any expression language, cache backend or journal store.

# Key Interfaces

  - Evaluator: binds variable values and evaluates an expression string to a real number.
  - ResultCache: stores encoded operation results keyed by operation and input.
  - Journal: records the computations a host performed, for history views.

Contract suites (RunEvaluatorContract, RunResultCacheContract, RunJournalContract) let every
adapter prove it honors the interface.
*/
package ports

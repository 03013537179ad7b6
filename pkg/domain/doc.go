/*
Package domain contains the value types shared by the multivar kernel and its adapters.

Every type here is an immutable value created for a single kernel call. The package is kept
pure and free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Point / Vector: named real coordinates (x, y and an optional z).
  - SampleSeries: ordered (t, value) pairs produced while walking an approach path.
  - LimitEstimate: the last-window mean of a path walk, or "no limit along this path".
  - FieldCheckResult: per-point cross-partial evidence for a 2-D vector field.
  - Hessian / HessianVerdict: the second-derivative test at a stationary point.
  - Range, SurfacePoint, ContourLevel: grid sampling inputs and outputs.

Undefined numeric results are represented as NaN inside the kernel and as Number (which
serializes to null) at transport boundaries.
*/
package domain

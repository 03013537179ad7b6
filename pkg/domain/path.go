package domain

import "strings"

// PathKind selects the curve along which a limit point is approached.
type PathKind string

const (
	PathAxisX     PathKind = "axis-x"
	PathAxisY     PathKind = "axis-y"
	PathDiagonal  PathKind = "diagonal"
	PathParabolic PathKind = "parabolic"
)

// PathKinds lists every supported approach path in display order.
func PathKinds() []PathKind {
	return []PathKind{PathAxisX, PathAxisY, PathDiagonal, PathParabolic}
}

// ParsePathKind accepts the canonical names plus the short "x" / "y" aliases.
func ParsePathKind(s string) (PathKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "axis-x", "x":
		return PathAxisX, nil
	case "axis-y", "y":
		return PathAxisY, nil
	case "diagonal", "y=x":
		return PathDiagonal, nil
	case "parabolic", "y=x^2":
		return PathParabolic, nil
	}
	return "", Invalidf("unknown path %q (want axis-x, axis-y, diagonal or parabolic)", s)
}

// Valid reports whether k is a supported path kind.
func (k PathKind) Valid() bool {
	for _, known := range PathKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// At returns the point at distance parameter r from target along the path.
// Positive r lies on the + side of each axis, so walking r down to 0 approaches from one side only.
// At r = 0 every path meets the target. A target z is carried unchanged.
func (k PathKind) At(target Point, r float64) (Point, bool) {
	switch k {
	case PathAxisX:
		return target.With(VarX, target.X+r), true
	case PathAxisY:
		return target.With(VarY, target.Y+r), true
	case PathDiagonal:
		return target.With(VarX, target.X+r).With(VarY, target.Y+r), true
	case PathParabolic:
		return target.With(VarX, target.X+r).With(VarY, target.Y+r*r), true
	}
	return target, false
}

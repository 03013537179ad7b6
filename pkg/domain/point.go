package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Var names a coordinate of a Point.
type Var string

const (
	VarX Var = "x"
	VarY Var = "y"
	VarZ Var = "z"
)

// ParseVar validates a variable name.
func ParseVar(s string) (Var, error) {
	switch v := Var(strings.ToLower(strings.TrimSpace(s))); v {
	case VarX, VarY, VarZ:
		return v, nil
	default:
		return "", Invalidf("unknown variable %q (want x, y or z)", s)
	}
}

// Point is an ordered tuple of named real coordinates. Z is nil for 2-D points.
// Points are values: With returns a modified copy and never touches the receiver.
type Point struct {
	X float64  `json:"x" yaml:"x"`
	Y float64  `json:"y" yaml:"y"`
	Z *float64 `json:"z,omitempty" yaml:"z,omitempty"`
}

// P2 builds a 2-D point.
func P2(x, y float64) Point { return Point{X: x, Y: y} }

// P3 builds a 3-D point.
func P3(x, y, z float64) Point { return Point{X: x, Y: y, Z: &z} }

// HasZ reports whether the point carries a z coordinate.
func (p Point) HasZ() bool { return p.Z != nil }

// Vars lists the coordinates present in p, in x, y, z order.
func (p Point) Vars() []Var {
	if p.HasZ() {
		return []Var{VarX, VarY, VarZ}
	}
	return []Var{VarX, VarY}
}

// Coord returns the value of v. An absent z reads as 0; an unknown name is undefined.
func (p Point) Coord(v Var) float64 {
	switch v {
	case VarX:
		return p.X
	case VarY:
		return p.Y
	case VarZ:
		if p.Z == nil {
			return 0
		}
		return *p.Z
	}
	return Undefined()
}

// With returns a copy of p with v set to value. Setting z on a 2-D point makes it 3-D.
func (p Point) With(v Var, value float64) Point {
	switch v {
	case VarX:
		p.X = value
	case VarY:
		p.Y = value
	case VarZ:
		p.Z = &value
	}
	return p
}

// Bindings is the evaluator view of p.
func (p Point) Bindings() map[string]float64 {
	b := map[string]float64{"x": p.X, "y": p.Y}
	if p.Z != nil {
		b["z"] = *p.Z
	}
	return b
}

func (p Point) String() string {
	if p.Z != nil {
		return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, *p.Z)
	}
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// ParsePoint reads "x,y" or "x,y,z".
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "()"), ",")
	if len(parts) != 2 && len(parts) != 3 {
		return Point{}, Invalidf("point %q must have 2 or 3 coordinates", s)
	}
	vals := make([]float64, len(parts))
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Point{}, Invalidf("point %q: coordinate %d: %v", s, i+1, err)
		}
		vals[i] = f
	}
	if len(vals) == 3 {
		return P3(vals[0], vals[1], vals[2]), nil
	}
	return P2(vals[0], vals[1]), nil
}

// Vector has the shape of a Point and is used for gradients and directions.
type Vector Point

// V2 builds a 2-D vector.
func V2(x, y float64) Vector { return Vector(P2(x, y)) }

// V3 builds a 3-D vector.
func V3(x, y, z float64) Vector { return Vector(P3(x, y, z)) }

// HasZ reports whether the vector carries a z component.
func (v Vector) HasZ() bool { return Point(v).HasZ() }

// Coord returns component c.
func (v Vector) Coord(c Var) float64 { return Point(v).Coord(c) }

// Vars lists the components present in v.
func (v Vector) Vars() []Var { return Point(v).Vars() }

func (v Vector) String() string { return Point(v).String() }

// With returns a copy of v with component c set to f.
func (v Vector) With(c Var, f float64) Vector {
	return Vector(Point(v).With(c, f))
}

// Magnitude is the Euclidean norm over the coordinates present.
func (v Vector) Magnitude() float64 {
	sum := v.X*v.X + v.Y*v.Y
	if v.Z != nil {
		sum += *v.Z * *v.Z
	}
	return math.Sqrt(sum)
}

// Dot multiplies the coordinates both vectors carry; z only counts when both have it.
func (v Vector) Dot(w Vector) float64 {
	sum := v.X*w.X + v.Y*w.Y
	if v.Z != nil && w.Z != nil {
		sum += *v.Z * *w.Z
	}
	return sum
}

// Normalize returns v/|v|. It is total: the zero vector normalizes to the zero vector
// of the same dimension.
func Normalize(v Vector) Vector {
	m := v.Magnitude()
	if m == 0 {
		out := V2(0, 0)
		if v.HasZ() {
			out = V3(0, 0, 0)
		}
		return out
	}
	out := V2(v.X/m, v.Y/m)
	if v.Z != nil {
		out = V3(v.X/m, v.Y/m, *v.Z/m)
	}
	return out
}

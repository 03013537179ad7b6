package service

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/aretw0/multivar/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Parameter kinds used in OperationInfo.
const (
	ParamString = "string"
	ParamNumber = "number"
	ParamInt    = "integer"
	ParamBool   = "boolean"
	ParamPoint  = "point"
	ParamVector = "vector"
	ParamRange  = "range"
	ParamPoints = "points"
	ParamLevels = "levels"
	ParamPaths  = "paths"
)

// ParamInfo describes one request field.
type ParamInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

// OperationInfo describes one operation accepted by Dispatch.
type OperationInfo struct {
	Name    string      `json:"name"`
	Summary string      `json:"summary"`
	Params  []ParamInfo `json:"params"`
}

type operation struct {
	info     OperationInfo
	dispatch func(ctx context.Context, s *Service, params map[string]any) (any, error)
}

func bind[Req request, Resp any](info OperationInfo, call func(*Service, context.Context, Req) (Resp, error)) operation {
	return operation{
		info: info,
		dispatch: func(ctx context.Context, s *Service, params map[string]any) (any, error) {
			var req Req
			if err := Decode(params, &req); err != nil {
				return nil, err
			}
			return call(s, ctx, req)
		},
	}
}

var (
	exprParam = ParamInfo{Name: "expr", Kind: ParamString, Required: true, Description: "Expression in x, y and optionally z, e.g. x^2*y + y^3"}
	atParam   = ParamInfo{Name: "at", Kind: ParamPoint, Required: true, Description: "Point as {x, y[, z]}, [x, y[, z]] or \"x,y[,z]\""}
	xParam    = ParamInfo{Name: "x", Kind: ParamRange, Description: "x range as {min, max} or \"min:max\" (default -5:5)"}
	yParam    = ParamInfo{Name: "y", Kind: ParamRange, Description: "y range as {min, max} or \"min:max\" (default -5:5)"}
	resParam  = ParamInfo{Name: "resolution", Kind: ParamInt, Description: "Grid subdivisions per axis (0 uses the default)"}
)

var catalogue = []operation{
	bind(OperationInfo{
		Name:    OpEvaluate,
		Summary: "Evaluate f at a point",
		Params:  []ParamInfo{exprParam, atParam},
	}, (*Service).Evaluate),
	bind(OperationInfo{
		Name:    OpPartial,
		Summary: "First-order partial derivative by central difference",
		Params: []ParamInfo{
			exprParam,
			{Name: "var", Kind: ParamString, Required: true, Description: "Variable to differentiate by: x, y or z"},
			atParam,
			{Name: "step", Kind: ParamNumber, Description: "Finite-difference step h (0 uses the default 1e-4)"},
		},
	}, (*Service).Partial),
	bind(OperationInfo{
		Name:    OpGradient,
		Summary: "Gradient vector of f at a point",
		Params:  []ParamInfo{exprParam, atParam},
	}, (*Service).Gradient),
	bind(OperationInfo{
		Name:    OpDirectional,
		Summary: "Directional derivative ∇f·d",
		Params: []ParamInfo{
			exprParam,
			atParam,
			{Name: "direction", Kind: ParamVector, Required: true, Description: "Direction vector d"},
			{Name: "normalize", Kind: ParamBool, Description: "Normalize d before use"},
		},
	}, (*Service).Directional),
	bind(OperationInfo{
		Name:    OpNormalize,
		Summary: "Scale a vector to unit length",
		Params: []ParamInfo{
			{Name: "vector", Kind: ParamVector, Required: true, Description: "Vector to normalize"},
		},
	}, (*Service).Normalize),
	bind(OperationInfo{
		Name:    OpLimit,
		Summary: "Estimate the limit of f at a target along approach paths (heuristic)",
		Params: []ParamInfo{
			exprParam,
			{Name: "target", Kind: ParamPoint, Required: true, Description: "Point approached"},
			{Name: "paths", Kind: ParamPaths, Description: "Subset of axis-x, axis-y, diagonal, parabolic (default all)"},
			{Name: "steps", Kind: ParamInt, Description: "Samples per path (0 uses the default 20)"},
		},
	}, (*Service).Limit),
	bind(OperationInfo{
		Name:    OpConservative,
		Summary: "Test whether the field (P, Q) is conservative at sample points (heuristic)",
		Params: []ParamInfo{
			{Name: "p", Kind: ParamString, Required: true, Description: "Field component P(x, y)"},
			{Name: "q", Kind: ParamString, Required: true, Description: "Field component Q(x, y)"},
			{Name: "points", Kind: ParamPoints, Description: "Sample points (default (1,1) (2,1) (1,2) (-1,1))"},
		},
	}, (*Service).Conservative),
	bind(OperationInfo{
		Name:    OpClassify,
		Summary: "Classify a stationary point with the Hessian test",
		Params:  []ParamInfo{exprParam, atParam},
	}, (*Service).Classify),
	bind(OperationInfo{
		Name:    OpSurface,
		Summary: "Sample z = f(x, y) on a grid",
		Params:  []ParamInfo{exprParam, xParam, yParam, resParam},
	}, (*Service).Surface),
	bind(OperationInfo{
		Name:    OpContours,
		Summary: "Collect grid points near level values of f",
		Params: []ParamInfo{
			exprParam,
			{Name: "levels", Kind: ParamLevels, Required: true, Description: "Level values"},
			xParam, yParam, resParam,
		},
	}, (*Service).Contours),
	bind(OperationInfo{
		Name:    OpLagrange,
		Summary: "Check the Lagrange conditions ∇f = λ∇g, g = 0 at a point",
		Params: []ParamInfo{
			{Name: "f", Kind: ParamString, Required: true, Description: "Objective f(x, y[, z])"},
			{Name: "g", Kind: ParamString, Required: true, Description: "Constraint g, satisfied where g = 0"},
			atParam,
			{Name: "lambda", Kind: ParamNumber, Required: true, Description: "Multiplier λ"},
		},
	}, (*Service).Lagrange),
}

func registry() map[string]operation {
	ops := make(map[string]operation, len(catalogue))
	for _, op := range catalogue {
		ops[op.info.Name] = op
	}
	return ops
}

// Catalogue lists every operation Dispatch accepts, in display order.
func Catalogue() []OperationInfo {
	out := make([]OperationInfo, 0, len(catalogue))
	for _, op := range catalogue {
		out = append(out, op.info)
	}
	return out
}

// Operations lists the operations accepted by Dispatch.
func (s *Service) Operations() []OperationInfo {
	return Catalogue()
}

// Dispatch decodes params into the request of operation name and serves it.
// Unknown names wrap domain.ErrUnknownOperation; bad params wrap domain.ErrInvalidRequest.
func (s *Service) Dispatch(ctx context.Context, name string, params map[string]any) (any, error) {
	op, ok := s.operations[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownOperation, name)
	}
	if params == nil {
		params = map[string]any{}
	}
	return op.dispatch(ctx, s, params)
}

// Decode fills a request struct from loosely typed params (JSON bodies, MCP arguments,
// worksheet YAML). Points, vectors and ranges also accept their string and array forms.
func Decode(params map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
		DecodeHook:       decodeHook,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(params); err != nil {
		return domain.Invalidf("%v", err)
	}
	return nil
}

var (
	pointType  = reflect.TypeOf(domain.Point{})
	vectorType = reflect.TypeOf(domain.Vector{})
	rangeType  = reflect.TypeOf(domain.Range{})
)

func decodeHook(from, to reflect.Type, data any) (any, error) {
	switch to {
	case pointType, vectorType:
		p, ok, err := pointFrom(data)
		if err != nil || !ok {
			return data, err
		}
		if to == vectorType {
			return domain.Vector(p), nil
		}
		return p, nil
	case rangeType:
		if s, ok := data.(string); ok {
			return domain.ParseRange(s)
		}
		if list, ok := data.([]any); ok && len(list) == 2 {
			lo, err := toFloat(list[0])
			if err != nil {
				return nil, err
			}
			hi, err := toFloat(list[1])
			if err != nil {
				return nil, err
			}
			return domain.Range{Min: lo, Max: hi}, nil
		}
	}
	return data, nil
}

func pointFrom(data any) (domain.Point, bool, error) {
	switch v := data.(type) {
	case string:
		p, err := domain.ParsePoint(v)
		return p, err == nil, err
	case []any:
		coords := make([]float64, len(v))
		for i, c := range v {
			f, err := toFloat(c)
			if err != nil {
				return domain.Point{}, false, err
			}
			coords[i] = f
		}
		switch len(coords) {
		case 2:
			return domain.P2(coords[0], coords[1]), true, nil
		case 3:
			return domain.P3(coords[0], coords[1], coords[2]), true, nil
		}
		return domain.Point{}, false, domain.Invalidf("point needs 2 or 3 coordinates, got %d", len(coords))
	case []float64:
		items := make([]any, len(v))
		for i, f := range v {
			items[i] = f
		}
		return pointFrom(items)
	}
	return domain.Point{}, false, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, domain.Invalidf("%q is not a number", n)
		}
		return f, nil
	}
	return 0, domain.Invalidf("%v is not a number", v)
}

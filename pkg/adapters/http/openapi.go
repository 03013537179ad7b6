package http

import (
	"net/http"

	"github.com/aretw0/multivar/pkg/service"
	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPIVersion is the OpenAPI dialect of the document served on GET /openapi.json.
const OpenAPIVersion = "3.0.3"

// OpenAPI renders the operation catalogue as an OpenAPI document.
// Every operation becomes POST /v1/{name} with a JSON body built from its parameters.
func OpenAPI(ops []service.OperationInfo, version string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       "multivar",
			Description: "Finite-difference multivariable calculus over HTTP.",
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}

	list := openapi3.NewOperation()
	list.OperationID = "listOperations"
	list.Summary = "List the operations and their parameters."
	list.Responses = responses(openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema()))
	doc.AddOperation("/v1/operations", http.MethodGet, list)

	for _, op := range ops {
		doc.AddOperation("/v1/"+op.Name, http.MethodPost, operation(op))
	}
	return doc
}

func operation(info service.OperationInfo) *openapi3.Operation {
	body := openapi3.NewObjectSchema()
	for _, p := range info.Params {
		schema := paramSchema(p.Kind)
		schema.Description = p.Description
		body.WithProperty(p.Name, schema)
		if p.Required {
			body.Required = append(body.Required, p.Name)
		}
	}

	op := openapi3.NewOperation()
	op.OperationID = info.Name
	op.Summary = info.Summary
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(body),
	}
	op.Responses = responses(openapi3.NewObjectSchema())
	return op
}

func responses(result *openapi3.Schema) *openapi3.Responses {
	errorBody := openapi3.NewObjectSchema().WithProperty("error", openapi3.NewStringSchema())
	errorBody.Required = []string{"error"}

	out := openapi3.NewResponses()
	out.Set("200", &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription("Result").WithJSONSchema(result),
	})
	out.Set("default", &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription("Error").WithJSONSchema(errorBody),
	})
	return out
}

// paramSchema mirrors the shapes accepted by service.Decode.
func paramSchema(kind string) *openapi3.Schema {
	number := openapi3.NewFloat64Schema
	switch kind {
	case service.ParamNumber:
		return number()
	case service.ParamInt:
		return openapi3.NewIntegerSchema()
	case service.ParamBool:
		return openapi3.NewBoolSchema()
	case service.ParamPoint, service.ParamVector:
		return pointSchema()
	case service.ParamRange:
		bounds := openapi3.NewObjectSchema().WithProperty("min", number()).WithProperty("max", number())
		bounds.Required = []string{"min", "max"}
		return openapi3.NewOneOfSchema(
			openapi3.NewStringSchema(),
			openapi3.NewArraySchema().WithItems(number()).WithMinItems(2).WithMaxItems(2),
			bounds,
		)
	case service.ParamPoints:
		return openapi3.NewArraySchema().WithItems(pointSchema())
	case service.ParamLevels:
		return openapi3.NewArraySchema().WithItems(number())
	case service.ParamPaths:
		return openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	default:
		return openapi3.NewStringSchema()
	}
}

// pointSchema accepts "x,y[,z]", [x, y(, z)] or {"x": .., "y": .., "z": ..}.
func pointSchema() *openapi3.Schema {
	coords := openapi3.NewObjectSchema().
		WithProperty("x", openapi3.NewFloat64Schema()).
		WithProperty("y", openapi3.NewFloat64Schema()).
		WithProperty("z", openapi3.NewFloat64Schema())
	coords.Required = []string{"x", "y"}
	return openapi3.NewOneOfSchema(
		openapi3.NewStringSchema(),
		openapi3.NewArraySchema().WithItems(openapi3.NewFloat64Schema()).WithMinItems(2).WithMaxItems(3),
		coords,
	)
}

// GetOpenAPI handles GET /openapi.json.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.spec)
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/multivar"
	"github.com/aretw0/multivar/internal/metrics"
	"github.com/aretw0/multivar/pkg/adapters/memory"
	"github.com/aretw0/multivar/pkg/ports"
	"github.com/aretw0/multivar/pkg/service"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	m := metrics.New(nil)
	svc := service.New(multivar.New(),
		service.WithJournal(memory.NewJournal()),
		service.WithMetrics(m),
	)
	return NewHandler(svc, WithMetrics(m.Handler()))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var info service.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, multivar.Version, info.Version)
	assert.NotEmpty(t, info.Operations)

	var withAPI InfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &withAPI))
	assert.Equal(t, multivar.Version, withAPI.APIVersion)
}

func TestGetOpenAPI(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	doc, err := openapi3.NewLoader().LoadFromData(rec.Body.Bytes())
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
	assert.Equal(t, OpenAPIVersion, doc.OpenAPI)
	assert.Equal(t, multivar.Version, doc.Info.Version)

	for _, op := range service.Catalogue() {
		item := doc.Paths.Value("/v1/" + op.Name)
		require.NotNil(t, item, op.Name)
		require.NotNil(t, item.Post, op.Name)
		assert.Equal(t, op.Name, item.Post.OperationID)
	}
	require.NotNil(t, doc.Paths.Value("/v1/operations").Get)

	gradient := doc.Paths.Value("/v1/gradient").Post.RequestBody.Value.Content.Get("application/json").Schema.Value
	assert.ElementsMatch(t, []string{"expr", "at"}, gradient.Required)
	assert.Len(t, gradient.Properties["at"].Value.OneOf, 3)
}

func TestExecute_Gradient(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/v1/gradient", `{"expr": "x^2*y + y^3", "at": {"x": 1, "y": 2}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp service.GradientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 4.0, resp.Gradient.X.Float64(), 1e-4)
	assert.InDelta(t, 13.0, resp.Gradient.Y.Float64(), 1e-4)
}

func TestExecute_UndefinedIsNull(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/v1/evaluate", `{"expr": "1/x", "at": "0,1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"value": null}`, rec.Body.String())
}

func TestExecute_StatusMapping(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown operation", "/v1/integrate", `{}`, http.StatusNotFound},
		{"malformed json", "/v1/gradient", `{"expr": `, http.StatusBadRequest},
		{"missing expr", "/v1/gradient", `{"at": "1,2"}`, http.StatusBadRequest},
		{"empty body", "/v1/classify", ``, http.StatusBadRequest},
		{"unknown field", "/v1/normalize", `{"vector": "1,1", "scale": 2}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestOperationsHistoryAndMetrics(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/v1/operations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ops []service.OperationInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ops))
	assert.Len(t, ops, 11)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/classify", `{"expr": "x^2 + y^2", "at": [0, 0]}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/normalize", `{"vector": [3, 4]}`).Code)

	rec = do(t, h, http.MethodGet, "/v1/history?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []ports.JournalEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, service.OpNormalize, entries[0].Operation)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/v1/history?limit=-2", "").Code)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `multivar_operations_total{operation="classify",outcome="ok"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodOptions, "/v1/gradient", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

type failingService struct{ *service.Service }

func (failingService) Dispatch(context.Context, string, map[string]any) (any, error) {
	return nil, errors.New("backend exploded")
}

func TestExecute_InternalError(t *testing.T) {
	svc := failingService{Service: service.New(multivar.New())}
	h := NewHandler(svc)

	rec := do(t, h, http.MethodPost, "/v1/gradient", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

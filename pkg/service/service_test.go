package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/multivar"
	"github.com/aretw0/multivar/internal/metrics"
	"github.com/aretw0/multivar/pkg/adapters/memory"
	"github.com/aretw0/multivar/pkg/domain"
	"github.com/aretw0/multivar/pkg/ports"
	"github.com/aretw0/multivar/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(opts ...service.Option) *service.Service {
	return service.New(multivar.New(), opts...)
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}

func TestService_Gradient(t *testing.T) {
	svc := newService()

	resp, err := svc.Gradient(context.Background(), service.GradientRequest{Expr: "x^2*y + y^3", At: domain.P2(1, 2)})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, resp.Gradient.X.Float64(), 1e-4)
	assert.InDelta(t, 13.0, resp.Gradient.Y.Float64(), 1e-4)
	assert.Nil(t, resp.Gradient.Z)
	assert.InDelta(t, math.Hypot(4, 13), resp.Magnitude.Float64(), 1e-3)
}

func TestService_CachesAndJournals(t *testing.T) {
	stub := memory.NewEvaluator(map[string]memory.Func{
		"x*y": memory.XY(func(x, y float64) float64 { return x * y }),
	})
	journal := memory.NewJournal()
	cache := memory.NewCache()
	m := metrics.New(nil)
	svc := service.New(multivar.New(multivar.WithEvaluator(stub)),
		service.WithCache(cache),
		service.WithJournal(journal),
		service.WithMetrics(m),
	)
	ctx := context.Background()
	req := service.GradientRequest{Expr: "x*y", At: domain.P2(2, 3)}

	first, err := svc.Gradient(ctx, req)
	require.NoError(t, err)
	calls := stub.Calls()

	second, err := svc.Gradient(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, calls, stub.Calls(), "second call served from cache")
	assert.Equal(t, 1, cache.Len())

	entries, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Cached)
	assert.False(t, entries[1].Cached)
	assert.Equal(t, service.OpGradient, entries[0].Operation)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.JSONEq(t, `{"expr":"x*y","at":{"x":2,"y":3}}`, string(entries[0].Request))

	body := scrape(t, m)
	assert.Contains(t, body, `multivar_cache_lookups_total{result="hit"} 1`)
	assert.Contains(t, body, `multivar_cache_lookups_total{result="miss"} 1`)
	assert.Contains(t, body, `multivar_operations_total{operation="gradient",outcome="ok"} 2`)
}

func TestService_CacheKeyDependsOnSettings(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()
	req := service.PartialRequest{Expr: "x^3", Var: "x", At: domain.P2(1, 0)}

	_, err := service.New(multivar.New(), service.WithCache(cache)).Partial(ctx, req)
	require.NoError(t, err)
	_, err = service.New(multivar.New(multivar.WithStep(1e-2)), service.WithCache(cache)).Partial(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	_, err = service.New(multivar.New(multivar.WithWorkers(1)), service.WithCache(cache)).Partial(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len(), "worker count does not change results")
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (brokenCache) Set(context.Context, string, []byte) error   { return errors.New("down") }

type brokenJournal struct{}

func (brokenJournal) Record(context.Context, ports.JournalEntry) error { return errors.New("down") }
func (brokenJournal) Recent(context.Context, int) ([]ports.JournalEntry, error) {
	return nil, errors.New("down")
}

func TestService_CollaboratorFailuresDoNotFailOperations(t *testing.T) {
	svc := newService(service.WithCache(brokenCache{}), service.WithJournal(brokenJournal{}))

	resp, err := svc.Evaluate(context.Background(), service.EvaluateRequest{Expr: "x + y", At: domain.P2(1, 2)})
	require.NoError(t, err)
	assert.Equal(t, 3.0, resp.Value.Float64())

	_, err = svc.History(context.Background(), 5)
	assert.Error(t, err)
}

func TestService_Validation(t *testing.T) {
	svc := newService(service.WithLimits(service.Limits{MaxResolution: 10, MaxSteps: 10, MaxLevels: 2, MaxPoints: 1}))
	ctx := context.Background()

	cases := map[string]error{}
	_, cases["empty expr"] = svc.Gradient(ctx, service.GradientRequest{At: domain.P2(0, 0)})
	_, cases["bad var"] = svc.Partial(ctx, service.PartialRequest{Expr: "x", Var: "w"})
	_, cases["negative step"] = svc.Partial(ctx, service.PartialRequest{Expr: "x", Var: "x", Step: -1})
	_, cases["nan point"] = svc.Evaluate(ctx, service.EvaluateRequest{Expr: "x", At: domain.P2(math.NaN(), 0)})
	_, cases["resolution"] = svc.Surface(ctx, service.SurfaceRequest{Expr: "x", Resolution: 11})
	_, cases["range"] = svc.Surface(ctx, service.SurfaceRequest{Expr: "x", X: domain.Range{Min: 2, Max: 1}})
	_, cases["steps"] = svc.Limit(ctx, service.LimitRequest{Expr: "x", Steps: 11})
	_, cases["path"] = svc.Limit(ctx, service.LimitRequest{Expr: "x", Paths: []string{"spiral"}})
	_, cases["no levels"] = svc.Contours(ctx, service.ContoursRequest{Expr: "x"})
	_, cases["too many levels"] = svc.Contours(ctx, service.ContoursRequest{Expr: "x", Levels: []float64{1, 2, 3}})
	_, cases["too many points"] = svc.Conservative(ctx, service.ConservativeRequest{P: "x", Q: "y", Points: []domain.Point{domain.P2(0, 0), domain.P2(1, 1)}})
	_, cases["lambda"] = svc.Lagrange(ctx, service.LagrangeRequest{F: "x", G: "y", Lambda: math.Inf(1)})

	for name, err := range cases {
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, name)
	}
}

func TestService_UndefinedSerializesAsNull(t *testing.T) {
	svc := newService()

	resp, err := svc.Evaluate(context.Background(), service.EvaluateRequest{Expr: "1/x", At: domain.P2(0, 1)})
	require.NoError(t, err)
	assert.False(t, resp.Value.IsDefined())

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":null}`, string(data))
}

func TestService_Limit(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	resp, err := svc.Limit(ctx, service.LimitRequest{Expr: "x*y/(x^2 + y^2)", Target: domain.P2(0, 0)})
	require.NoError(t, err)
	require.Len(t, resp.Paths, len(domain.PathKinds()))
	assert.False(t, resp.Agree)
	assert.Equal(t, domain.PathAxisX, resp.Paths[0].Path)
	assert.InDelta(t, 0.5, resp.Paths[2].Estimate.Float64(), 1e-9)

	resp, err = svc.Limit(ctx, service.LimitRequest{Expr: "x + y", Target: domain.P2(1, 1)})
	require.NoError(t, err)
	assert.True(t, resp.Agree)

	resp, err = svc.Limit(ctx, service.LimitRequest{Expr: "x + y", Target: domain.P2(1, 1), Paths: []string{"y"}, Steps: 8})
	require.NoError(t, err)
	require.Len(t, resp.Paths, 1)
	assert.Equal(t, domain.PathAxisY, resp.Paths[0].Path)
	assert.Len(t, resp.Paths[0].Samples, 8)
}

func TestService_FieldAndCriticalPoints(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	field, err := svc.Conservative(ctx, service.ConservativeRequest{P: "2*x", Q: "2*y"})
	require.NoError(t, err)
	assert.True(t, field.Conservative)
	assert.Equal(t, 4, field.Matches)
	assert.Equal(t, "f(x,y) = ∫(2*x)dx + g(y)", field.Potential)

	rotation, err := svc.Conservative(ctx, service.ConservativeRequest{P: "-y", Q: "x"})
	require.NoError(t, err)
	assert.False(t, rotation.Conservative)
	assert.Empty(t, rotation.Potential)

	// Matches at every default point, fails at (0, 3).
	custom, err := svc.Conservative(ctx, service.ConservativeRequest{
		P:      "x*y",
		Q:      "0.5*x^2 + (y-1)*(y-2)*x",
		Points: []domain.Point{domain.P2(0, 3)},
	})
	require.NoError(t, err)
	assert.False(t, custom.Conservative)
	assert.Equal(t, 0, custom.Matches)
	assert.Empty(t, custom.Potential)

	saddle, err := svc.Classify(ctx, service.ClassifyRequest{Expr: "x^2 - y^2", At: domain.P2(0, 0)})
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictSaddle, saddle.Verdict)
	assert.Less(t, saddle.Determinant.Float64(), 0.0)

	check, err := svc.Lagrange(ctx, service.LagrangeRequest{F: "x*y", G: "x + y - 2", At: domain.P2(1, 1), Lambda: 1})
	require.NoError(t, err)
	assert.True(t, check.Satisfied)
	assert.True(t, check.OnConstraint)
}

func TestService_DirectionalAndNormalize(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	resp, err := svc.Directional(ctx, service.DirectionalRequest{
		Expr: "x^2 + y^2", At: domain.P2(1, 1), Direction: domain.V2(3, 4), Normalize: true,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, resp.Direction.X.Float64(), 1e-12)
	assert.InDelta(t, 2*0.6+2*0.8, resp.Value.Float64(), 1e-4)

	unit, err := svc.Normalize(ctx, service.NormalizeRequest{Vector: domain.V2(0, 0)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, unit.Unit.X.Float64())
	assert.Equal(t, 0.0, unit.Magnitude.Float64())
}

func TestService_Grids(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	surface, err := svc.Surface(ctx, service.SurfaceRequest{Expr: "x + y"})
	require.NoError(t, err)
	assert.Equal(t, 30, surface.Resolution)
	assert.Equal(t, domain.DefaultRange, surface.X)
	assert.Len(t, surface.Points, 31*31)

	contours, err := svc.Contours(ctx, service.ContoursRequest{Expr: "x^2 + y^2", Levels: []float64{1, 1000}, Resolution: 40})
	require.NoError(t, err)
	assert.Equal(t, 40, contours.Resolution)
	require.Len(t, contours.Levels, 1)
	assert.Equal(t, 1.0, contours.Levels[0].Level)
}

func TestService_InfoAndHistory(t *testing.T) {
	svc := newService()

	info := svc.Info()
	assert.Equal(t, multivar.Version, info.Version)
	assert.Len(t, info.Operations, 11)
	assert.Equal(t, service.DefaultLimits(), info.Limits)

	entries, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

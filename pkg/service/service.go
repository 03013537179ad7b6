package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/multivar"
	"github.com/aretw0/multivar/internal/logging"
	"github.com/aretw0/multivar/internal/metrics"
	"github.com/aretw0/multivar/internal/telemetry"
	"github.com/aretw0/multivar/pkg/domain"
	"github.com/aretw0/multivar/pkg/ports"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Service serves kernel operations to transports.
type Service struct {
	kernel      *multivar.Kernel
	cache       ports.ResultCache
	journal     ports.Journal
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	logger      *slog.Logger
	limits      Limits
	fingerprint string
	operations  map[string]operation
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables result caching.
func WithCache(c ports.ResultCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithJournal enables journaling of served computations.
func WithJournal(j ports.Journal) Option {
	return func(s *Service) {
		s.journal = j
	}
}

// WithMetrics records Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithLimits sets per-request ceilings.
func WithLimits(l Limits) Option {
	return func(s *Service) {
		s.limits = l
	}
}

// New creates a Service around k.
func New(k *multivar.Kernel, opts ...Option) *Service {
	s := &Service{
		kernel: k,
		limits: DefaultLimits(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.tracer == nil {
		s.tracer = telemetry.Tracer()
	}
	s.fingerprint = fingerprint(k.Settings())
	s.operations = registry()
	return s
}

// Kernel returns the wrapped kernel.
func (s *Service) Kernel() *multivar.Kernel { return s.kernel }

// Limits returns the per-request ceilings.
func (s *Service) Limits() Limits { return s.limits }

// Metrics returns the metrics sink, which may be nil.
func (s *Service) Metrics() *metrics.Metrics { return s.metrics }

// Info describes a running Service.
type Info struct {
	Version    string            `json:"version"`
	Settings   multivar.Settings `json:"settings"`
	Limits     Limits            `json:"limits"`
	Operations []OperationInfo   `json:"operations"`
}

// Info reports version, tuning and the operation catalogue.
func (s *Service) Info() Info {
	return Info{
		Version:    multivar.Version,
		Settings:   s.kernel.Settings(),
		Limits:     s.limits,
		Operations: s.Operations(),
	}
}

// History returns up to limit journal entries, newest first.
// Without a journal it returns an empty list.
func (s *Service) History(ctx context.Context, limit int) ([]ports.JournalEntry, error) {
	if s.journal == nil {
		return []ports.JournalEntry{}, nil
	}
	entries, err := s.journal.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	if entries == nil {
		entries = []ports.JournalEntry{}
	}
	return entries, nil
}

type request interface {
	validate(Limits) error
}

// execute runs one operation with validation, caching, journaling, metrics and tracing.
func execute[Req request, Resp any](ctx context.Context, s *Service, op string, req Req, compute func(Req) Resp) (Resp, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "multivar."+op, trace.WithAttributes(
		attribute.String("multivar.operation", op),
	))
	defer span.End()

	var resp Resp
	if err := req.validate(s.limits); err != nil {
		s.fail(span, op, metrics.OutcomeInvalid, start, err)
		return resp, err
	}
	if err := ctx.Err(); err != nil {
		s.fail(span, op, metrics.OutcomeError, start, err)
		return resp, err
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		err = fmt.Errorf("encode request: %w", err)
		s.fail(span, op, metrics.OutcomeError, start, err)
		return resp, err
	}
	key := s.cacheKey(op, reqJSON)

	cached := s.lookup(ctx, key, &resp)
	if !cached {
		resp = compute(req)
	}

	respJSON, err := json.Marshal(resp)
	if err != nil {
		err = fmt.Errorf("encode response: %w", err)
		s.fail(span, op, metrics.OutcomeError, start, err)
		return resp, err
	}
	if !cached {
		s.store(ctx, key, respJSON)
	}

	elapsed := time.Since(start)
	s.record(ctx, ports.JournalEntry{
		ID:        uuid.NewString(),
		Operation: op,
		Request:   reqJSON,
		Response:  respJSON,
		Cached:    cached,
		Duration:  elapsed,
		At:        start.UTC(),
	})

	span.SetAttributes(attribute.Bool("multivar.cached", cached))
	s.metrics.ObserveOperation(op, metrics.OutcomeOK, elapsed)
	s.logger.Debug("operation served", "operation", op, "cached", cached, "duration", elapsed)
	return resp, nil
}

func (s *Service) fail(span trace.Span, op, outcome string, start time.Time, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.ObserveOperation(op, outcome, time.Since(start))
	s.logger.Debug("operation rejected", "operation", op, "outcome", outcome, "error", err)
}

func (s *Service) cacheKey(op string, reqJSON []byte) string {
	sum := sha256.Sum256(reqJSON)
	return op + ":" + s.fingerprint + ":" + hex.EncodeToString(sum[:])
}

func (s *Service) lookup(ctx context.Context, key string, into any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache lookup failed", "key", key, "error", err)
		}
		s.metrics.CacheLookup(false)
		return false
	}
	if err := json.Unmarshal(data, into); err != nil {
		s.logger.Warn("discarding unreadable cache entry", "key", key, "error", err)
		s.metrics.CacheLookup(false)
		return false
	}
	s.metrics.CacheLookup(true)
	return true
}

func (s *Service) store(ctx context.Context, key string, value []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("cache store failed", "key", key, "error", err)
	}
}

func (s *Service) record(ctx context.Context, entry ports.JournalEntry) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		s.logger.Warn("journal record failed", "operation", entry.Operation, "error", err)
	}
}

// fingerprint identifies the result-affecting tuning; the worker count does not change results.
func fingerprint(settings multivar.Settings) string {
	settings.Workers = 0
	data, _ := json.Marshal(settings)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:6])
}

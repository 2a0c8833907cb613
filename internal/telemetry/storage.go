package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/steveyegge/civic/internal/storage"
	"github.com/steveyegge/civic/internal/types"
)

const storageScopeName = "github.com/steveyegge/civic/storage"

// InstrumentedStorage wraps storage.Storage with OTel tracing and metrics.
// Every method gets a span and is counted in civic.storage.* metrics.
// Use WrapStorage to create one; it returns the given store unchanged when
// telemetry is disabled.
type InstrumentedStorage struct {
	inner         storage.Storage
	tracer        trace.Tracer
	ops           metric.Int64Counter
	dur           metric.Float64Histogram
	errs          metric.Int64Counter
	votes         metric.Int64Counter
	categoryGauge metric.Int64Gauge
}

var _ storage.Storage = (*InstrumentedStorage)(nil)

// WrapStorage returns s decorated with OTel instrumentation.
// When telemetry is disabled, s is returned as-is with zero overhead.
func WrapStorage(s storage.Storage) storage.Storage {
	if !Enabled() {
		return s
	}
	return NewInstrumentedStorage(s, Tracer(storageScopeName), Meter(storageScopeName))
}

// NewInstrumentedStorage decorates s using the given tracer and meter.
func NewInstrumentedStorage(s storage.Storage, tracer trace.Tracer, m metric.Meter) *InstrumentedStorage {
	ops, _ := m.Int64Counter("civic.storage.operations",
		metric.WithDescription("Total storage operations executed"),
	)
	dur, _ := m.Float64Histogram("civic.storage.operation.duration",
		metric.WithDescription("Storage operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	errs, _ := m.Int64Counter("civic.storage.errors",
		metric.WithDescription("Total storage operation errors"),
	)
	votes, _ := m.Int64Counter("civic.votes",
		metric.WithDescription("Votes applied to existing issues"),
	)
	categoryGauge, _ := m.Int64Gauge("civic.issue.count",
		metric.WithDescription("Current number of issues by category (snapshot from GetStatistics)"),
	)
	return &InstrumentedStorage{
		inner:         s,
		tracer:        tracer,
		ops:           ops,
		dur:           dur,
		errs:          errs,
		votes:         votes,
		categoryGauge: categoryGauge,
	}
}

// op starts a span and records a metric for the named storage operation.
func (s *InstrumentedStorage) op(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span, time.Time) {
	all := append([]attribute.KeyValue{attribute.String("db.operation", name)}, attrs...)
	ctx, span := s.tracer.Start(ctx, "storage."+name,
		trace.WithAttributes(all...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	s.ops.Add(ctx, 1, metric.WithAttributes(all...))
	return ctx, span, time.Now()
}

// done ends the span, records duration and optional error.
func (s *InstrumentedStorage) done(ctx context.Context, span trace.Span, start time.Time, err error, attrs ...attribute.KeyValue) {
	ms := float64(time.Since(start).Microseconds()) / 1000
	s.dur.Record(ctx, ms, metric.WithAttributes(attrs...))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.errs.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	span.End()
}

func (s *InstrumentedStorage) ReportIssue(ctx context.Context, title string, category types.Category, location string) (string, error) {
	attrs := []attribute.KeyValue{attribute.String("civic.category", string(category))}
	ctx, span, t := s.op(ctx, "ReportIssue", attrs...)
	id, err := s.inner.ReportIssue(ctx, title, category, location)
	if err == nil {
		span.SetAttributes(attribute.String("civic.issue.id", id))
	}
	s.done(ctx, span, t, err, attrs...)
	return id, err
}

func (s *InstrumentedStorage) VoteIssue(ctx context.Context, id string) (int, error) {
	attrs := []attribute.KeyValue{attribute.String("civic.issue.id", id)}
	ctx, span, t := s.op(ctx, "VoteIssue", attrs...)
	n, err := s.inner.VoteIssue(ctx, id)
	if err == nil {
		span.SetAttributes(attribute.Int("civic.votes", n))
		if n > 0 {
			s.votes.Add(ctx, 1)
		}
	}
	s.done(ctx, span, t, err, attrs...)
	return n, err
}

func (s *InstrumentedStorage) GetIssue(ctx context.Context, id string) (*types.Issue, error) {
	attrs := []attribute.KeyValue{attribute.String("civic.issue.id", id)}
	ctx, span, t := s.op(ctx, "GetIssue", attrs...)
	v, err := s.inner.GetIssue(ctx, id)
	s.done(ctx, span, t, err, attrs...)
	return v, err
}

func (s *InstrumentedStorage) GetIssues(ctx context.Context, filter types.IssueFilter) ([]*types.Issue, error) {
	attrs := []attribute.KeyValue{attribute.String("civic.sort", string(filter.SortOrDefault()))}
	if filter.Category != nil {
		attrs = append(attrs, attribute.String("civic.category", string(*filter.Category)))
	}
	ctx, span, t := s.op(ctx, "GetIssues", attrs...)
	issues, err := s.inner.GetIssues(ctx, filter)
	if err == nil {
		span.SetAttributes(attribute.Int("civic.result.count", len(issues)))
	}
	s.done(ctx, span, t, err, attrs...)
	return issues, err
}

func (s *InstrumentedStorage) GetStatistics(ctx context.Context) (*types.Statistics, error) {
	ctx, span, t := s.op(ctx, "GetStatistics")
	v, err := s.inner.GetStatistics(ctx)
	s.done(ctx, span, t, err)
	if err == nil && v != nil {
		for category, count := range v.ByCategory {
			s.categoryGauge.Record(ctx, int64(count),
				metric.WithAttributes(attribute.String("category", category)))
		}
	}
	return v, err
}

// RunInReadTransaction records one span around the whole transaction. Reads
// made through the Reader inside fn are children of that span.
func (s *InstrumentedStorage) RunInReadTransaction(ctx context.Context, fn func(r storage.Reader) error) error {
	ctx, span, t := s.op(ctx, "RunInReadTransaction")
	err := s.inner.RunInReadTransaction(ctx, fn)
	s.done(ctx, span, t, err)
	return err
}

func (s *InstrumentedStorage) Path() string {
	return s.inner.Path()
}

func (s *InstrumentedStorage) Close() error {
	return s.inner.Close()
}

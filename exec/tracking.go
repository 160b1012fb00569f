package exec

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/zoobzio/sqlchain/exec"
	defaultOperation    = "query"
	maxQueryAttrLen     = 2000

	metricCalls    = "db.client.calls"
	metricDuration = "db.client.operation.duration"
)

// Tracker logs, traces and measures statements for one database.
type Tracker struct {
	logger   zerolog.Logger
	vendor   string
	settings Settings
	tracer   trace.Tracer
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewTracker creates a tracker for d. Metric instruments that fail to
// register are skipped.
func NewTracker(d Dialect, opts ...Option) *Tracker {
	o := newOptions(opts)
	t := &Tracker{
		logger:   o.logger.With().Str("vendor", d.Name).Logger(),
		vendor:   d.Name,
		settings: o.settings,
		tracer:   otel.Tracer(instrumentationName),
	}

	meter := otel.Meter(instrumentationName)
	if c, err := meter.Int64Counter(metricCalls,
		metric.WithDescription("Number of database statements executed")); err == nil {
		t.calls = c
	}
	if h, err := meter.Float64Histogram(metricDuration,
		metric.WithDescription("Duration of database statements"),
		metric.WithUnit("ms")); err == nil {
		t.duration = h
	}
	return t
}

// Track records a completed statement: a client span backdated to start,
// call and duration metrics, and a log event. ErrNoRows logs at debug,
// other errors at error, and slow statements at warn.
func (t *Tracker) Track(ctx context.Context, query string, args []any, start time.Time, rowsAffected int64, err error) {
	if t == nil {
		return
	}
	elapsed := time.Since(start)
	operation := operationOf(query)

	t.span(ctx, operation, query, start, rowsAffected, err)
	t.record(ctx, operation, elapsed, err)

	event := t.logger.With().
		Str("operation", operation).
		Int64("duration_ms", elapsed.Milliseconds()).
		Int64("rows_affected", rowsAffected).
		Str("query", truncate(query, t.settings.MaxQueryLength)).
		Logger()
	if t.settings.LogParameters && len(args) > 0 {
		event = event.With().Interface("args", sanitizeArgs(args, t.settings.MaxQueryLength)).Logger()
	}

	switch {
	case errors.Is(err, ErrNoRows):
		event.Debug().Msg("Database operation returned no rows")
	case err != nil:
		event.Error().Err(err).Msg("Database operation error")
	case t.settings.SlowThreshold > 0 && elapsed > t.settings.SlowThreshold:
		event.Warn().Msgf("Slow database operation detected (%s)", elapsed)
	default:
		event.Debug().Msg("Database operation executed")
	}
}

func (t *Tracker) span(ctx context.Context, operation, query string, start time.Time, rowsAffected int64, err error) {
	_, span := t.tracer.Start(ctx, "db."+operation,
		trace.WithTimestamp(start),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	span.SetAttributes(
		attribute.String("db.system", t.vendor),
		attribute.String("db.operation.name", operation),
		attribute.String("db.query.text", truncate(query, maxQueryAttrLen)),
		attribute.Int64("db.rows_affected", rowsAffected),
	)
	if err != nil && !errors.Is(err, ErrNoRows) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (t *Tracker) record(ctx context.Context, operation string, elapsed time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("db.system", t.vendor),
		attribute.String("db.operation.name", operation),
		attribute.Bool("error", err != nil && !errors.Is(err, ErrNoRows)),
	)
	if t.calls != nil {
		t.calls.Add(ctx, 1, attrs)
	}
	if t.duration != nil {
		t.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	}
}

// operationOf returns the lower-case leading SQL keyword.
func operationOf(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return defaultOperation
	}
	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete", "begin", "commit", "rollback", "savepoint", "release", "save":
		return op
	default:
		return defaultOperation
	}
}

// truncate shortens s to at most n runes, ending in "..." when there is room.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func sanitizeArgs(args []any, n int) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case string:
			out[i] = truncate(v, n)
		case []byte:
			out[i] = fmt.Sprintf("<bytes len=%d>", len(v))
		case nil:
			out[i] = nil
		default:
			out[i] = truncate(fmt.Sprintf("%v", v), n)
		}
	}
	return out
}

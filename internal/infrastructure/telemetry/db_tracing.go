package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type queryStartKey struct{}

// DBTracingConfig holds database span settings
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // bound values in span statements
	SlowQueryThresh time.Duration
	DBName          string
	TracerProvider  trace.TracerProvider // global provider when nil
}

// RegisterDBTracing installs otelgorm on db plus callbacks that tag spans
// with the affected table and row count and flag slow statements
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(cfg.TracerProvider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateSpan(tx, cfg.SlowQueryThresh, logger) }

	cb := db.Callback()
	registrations := []error{
		cb.Create().Before("gorm:create").Register("production:timing_create", before),
		cb.Query().Before("gorm:query").Register("production:timing_query", before),
		cb.Update().Before("gorm:update").Register("production:timing_update", before),
		cb.Delete().Before("gorm:delete").Register("production:timing_delete", before),
		cb.Row().Before("gorm:row").Register("production:timing_row", before),
		cb.Raw().Before("gorm:raw").Register("production:timing_raw", before),
		cb.Create().After("gorm:create").Register("production:span_create", after),
		cb.Query().After("gorm:query").Register("production:span_query", after),
		cb.Update().After("gorm:update").Register("production:span_update", after),
		cb.Delete().After("gorm:delete").Register("production:span_delete", after),
		cb.Row().After("gorm:row").Register("production:span_row", after),
		cb.Raw().After("gorm:raw").Register("production:span_raw", after),
	}
	if err := errors.Join(registrations...); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func annotateSpan(tx *gorm.DB, slow time.Duration, logger *zap.Logger) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, tx.Error.Error())
		span.RecordError(tx.Error)
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > slow {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		logger.Warn("Slow query",
			zap.String("table", tx.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
		)
	}
}

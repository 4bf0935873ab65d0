package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type queryLogOptions struct {
	debug         bool
	slowThreshold time.Duration
	withParams    bool
}

// queryLogger routes GORM output to slog. Bound values are dropped from the
// logged SQL unless withParams is set, so emails and company names stay out of
// the logs.
type queryLogger struct {
	logger *slog.Logger
	level  logger.LogLevel
	opts   queryLogOptions
}

var (
	_ logger.Interface  = (*queryLogger)(nil)
	_ gorm.ParamsFilter = (*queryLogger)(nil)
)

func newQueryLogger(base *slog.Logger, opts queryLogOptions) *queryLogger {
	level := logger.Warn
	if opts.debug {
		level = logger.Info
	}

	return &queryLogger{
		logger: base.With(slog.String("component", "account_store")),
		level:  level,
		opts:   opts,
	}
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *queryLogger) message(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.level < threshold {
		return
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf(msg, args...))
}

// ParamsFilter is consulted by GORM before it renders SQL for Trace.
func (l *queryLogger) ParamsFilter(_ context.Context, sql string, params ...any) (string, []any) {
	if l.opts.withParams {
		return sql, params
	}

	return sql, nil
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		attrs := append(l.queryAttrs(fc, elapsed), slog.String("error", err.Error()))
		l.logger.LogAttrs(ctx, slog.LevelError, "Account store query failed", attrs...)
	case l.isSlow(elapsed):
		attrs := append(l.queryAttrs(fc, elapsed), slog.Duration("slowThreshold", l.opts.slowThreshold))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "Account store slow query", attrs...)
	case l.level >= logger.Info:
		l.logger.LogAttrs(ctx, slog.LevelDebug, "Account store query", l.queryAttrs(fc, elapsed)...)
	}
}

func (l *queryLogger) isSlow(elapsed time.Duration) bool {
	return l.opts.slowThreshold > 0 && elapsed > l.opts.slowThreshold && l.level >= logger.Warn
}

func (l *queryLogger) queryAttrs(fc func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := fc()

	return []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
}

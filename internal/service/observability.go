package service

import (
	"context"
	"log/slog"
	"time"
)

// UseCaseEvent describes one finished zone or project mutation.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	Fields    map[string]any
}

func (e UseCaseEvent) Succeeded() bool { return e.Err == nil }

// UseCaseObserver is told about every mutation the services perform,
// rejected ones included.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// NewLogUseCaseObserver logs accepted mutations at info and rejected ones
// at warn, since a rejection is usually a validation problem the user can
// fix from the form.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return logObserver{logger: logger}
}

type logObserver struct {
	logger *slog.Logger
}

func (o logObserver) ObserveUseCase(ctx context.Context, e UseCaseEvent) {
	attrs := []slog.Attr{
		slog.String("use_case", e.Name),
		slog.Int64("duration_ms", e.Duration.Milliseconds()),
	}
	for k, v := range e.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
		o.logger.LogAttrs(ctx, slog.LevelWarn, "mutation rejected", attrs...)
		return
	}
	o.logger.LogAttrs(ctx, slog.LevelInfo, "mutation applied", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// track stamps the start of a use case; the returned func reports its
// outcome.
func track(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any) func(err error) {
	started := time.Now()
	return func(err error) {
		obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: started,
			Duration:  time.Since(started),
			Err:       err,
			Fields:    fields,
		})
	}
}

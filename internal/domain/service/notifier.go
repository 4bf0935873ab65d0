package service

import (
	"context"

	"internhub/internal/domain/entity"
)

// Notifier surfaces transient notices to whoever triggered the current operation.
type Notifier interface {
	Notify(ctx context.Context, notice entity.Notice)
}

type notifierKey struct{}

// WithNotifier returns a context whose operations report notices to n.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierKey{}, n)
}

// NotifierFromContext returns the notifier bound to ctx, or a notifier that drops everything.
func NotifierFromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierKey{}).(Notifier); ok && n != nil {
		return n
	}

	return discardNotifier{}
}

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, entity.Notice) {}

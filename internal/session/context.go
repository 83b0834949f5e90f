package session

import (
	"context"

	"titleview/internal/view"
)

type ctxKey struct{}

var key ctxKey

func WithStates(ctx context.Context, states view.States) context.Context {
	return context.WithValue(ctx, key, states)
}

// States returns the widget states stored in ctx, or nil.
func States(ctx context.Context) view.States {
	if s, ok := ctx.Value(key).(view.States); ok {
		return s
	}
	return nil
}

package common

import (
	"context"
)

type contextKey string

const (
	actorIDKey contextKey = "actor_id"
	handleKey  contextKey = "handle"
)

// WithActor injects the authenticated caller's identity into the context.
func WithActor(ctx context.Context, userID, handle string) context.Context {
	ctx = context.WithValue(ctx, actorIDKey, userID)
	return context.WithValue(ctx, handleKey, handle)
}

// ActorID resolves the caller's user id. Every DM operation fails closed
// when this returns false.
func ActorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(actorIDKey).(string)
	return id, ok && id != ""
}

// ActorHandle resolves the caller's handle, when present.
func ActorHandle(ctx context.Context) (string, bool) {
	h, ok := ctx.Value(handleKey).(string)
	return h, ok && h != ""
}

package service

import (
	"context"
	"time"

	"dmhub/internal/dm/repository"
)

// RateLimiter bounds how many messages a user may send inside a trailing
// window, across all conversations. Quota is derived from a live count over
// the message log rather than a persisted counter, so there is no second
// piece of state to keep consistent with the log. Two sends racing near the
// boundary can both pass the check; enforcement is best effort.
type RateLimiter struct {
	messages repository.MessageRepository
	limit    int
	window   time.Duration
}

func NewRateLimiter(messages repository.MessageRepository, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		messages: messages,
		limit:    limit,
		window:   window,
	}
}

// RemainingQuota reports how many sends the user has left in the current
// trailing window. Never negative.
func (l *RateLimiter) RemainingQuota(ctx context.Context, senderID string) (int, error) {
	since := time.Now().UTC().Add(-l.window)
	sent, err := l.messages.CountSentSince(ctx, senderID, since)
	if err != nil {
		return 0, err
	}
	remaining := l.limit - int(sent)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (l *RateLimiter) HasQuota(ctx context.Context, senderID string) (bool, error) {
	remaining, err := l.RemainingQuota(ctx, senderID)
	if err != nil {
		return false, err
	}
	return remaining > 0, nil
}

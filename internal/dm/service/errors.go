package service

import (
	"errors"

	"dmhub/internal/common"
)

// Error kinds surfaced to callers. All validation and authorization failures
// fail fast; nothing at this layer is retried.
var (
	ErrNotAuthenticated     = errors.New("caller identity could not be resolved")
	ErrSelfTarget           = errors.New("cannot open a conversation with yourself")
	ErrEmptyContent         = common.ErrEmptyContent
	ErrContentTooLong       = common.ErrContentTooLong
	ErrBlocked              = errors.New("messaging is blocked between these users")
	ErrRateLimited          = errors.New("message rate limit exceeded")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
)

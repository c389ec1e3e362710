package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dmhub/internal/dbmysql"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Save(ctx context.Context, msg *dbmysql.Message) error
	FindByID(ctx context.Context, id uint) (*dbmysql.Message, error)
	CountSentSince(ctx context.Context, senderID string, since time.Time) (int64, error)
	LatestInConversation(ctx context.Context, conversationID string) (*dbmysql.Message, error)
	UnreadCount(ctx context.Context, conversationID, actorID string) (int64, error)
	MarkRead(ctx context.Context, conversationID, actorID string, at time.Time) (int64, error)
	ListPage(ctx context.Context, conversationID string, before *dbmysql.Message, limit int) ([]*dbmysql.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Save(ctx context.Context, msg *dbmysql.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// FindByID returns (nil, nil) when the message does not exist.
func (r *messageRepository) FindByID(ctx context.Context, id uint) (*dbmysql.Message, error) {
	var msg dbmysql.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return &msg, nil
}

// CountSentSince counts messages a user sent across all conversations since
// the given time. The rate limiter derives quota from this live count instead
// of keeping a separate counter in sync with the message log.
func (r *messageRepository) CountSentSince(ctx context.Context, senderID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Where("sender_id = ? AND created_at >= ?", senderID, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count sent messages: %w", err)
	}
	return count, nil
}

// LatestInConversation returns (nil, nil) for an empty conversation.
func (r *messageRepository) LatestInConversation(ctx context.Context, conversationID string) (*dbmysql.Message, error) {
	var msg dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest message: %w", err)
	}
	return &msg, nil
}

func (r *messageRepository) UnreadCount(ctx context.Context, conversationID, actorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, actorID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

// MarkRead stamps every unread counterpart message in the conversation and
// returns how many rows transitioned. The read_at IS NULL guard keeps the
// transition monotonic and the call idempotent; the sender_id guard keeps the
// actor's own messages untouched.
func (r *messageRepository) MarkRead(ctx context.Context, conversationID, actorID string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, actorID).
		Update("read_at", at)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListPage fetches up to limit messages newest-first. When before is set the
// page continues strictly after that message in scan order (older than it).
// Ties on created_at break on id so pagination stays deterministic.
func (r *messageRepository) ListPage(ctx context.Context, conversationID string, before *dbmysql.Message, limit int) ([]*dbmysql.Message, error) {
	query := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID)

	if before != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			before.CreatedAt, before.CreatedAt, before.ID,
		)
	}

	var messages []*dbmysql.Message
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

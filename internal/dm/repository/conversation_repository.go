package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dmhub/internal/dbmysql"

	"gorm.io/gorm"
)

// ErrConversationExists is returned by Create when the pair key is already
// taken. The resolver reacts by re-reading the winning row.
var ErrConversationExists = errors.New("conversation already exists for pair")

type ConversationRepository interface {
	Create(ctx context.Context, conv *dbmysql.Conversation) error
	FindByPair(ctx context.Context, a, b string) (*dbmysql.Conversation, error)
	FindByID(ctx context.Context, id string) (*dbmysql.Conversation, error)
	ListByParticipant(ctx context.Context, userID string) ([]*dbmysql.Conversation, error)
	TouchLastMessage(ctx context.Context, id string, at time.Time) error
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, conv *dbmysql.Conversation) error {
	err := r.db.WithContext(ctx).Create(conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConversationExists
		}
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// FindByPair looks up the conversation for an unordered user pair.
// Returns (nil, nil) when no conversation exists yet.
func (r *conversationRepository) FindByPair(ctx context.Context, a, b string) (*dbmysql.Conversation, error) {
	var conv dbmysql.Conversation
	err := r.db.WithContext(ctx).
		Where("pair_key = ?", dbmysql.PairKeyFor(a, b)).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	return &conv, nil
}

// FindByID returns (nil, nil) when the conversation does not exist.
func (r *conversationRepository) FindByID(ctx context.Context, id string) (*dbmysql.Conversation, error) {
	var conv dbmysql.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	return &conv, nil
}

func (r *conversationRepository) ListByParticipant(ctx context.Context, userID string) ([]*dbmysql.Conversation, error) {
	var convs []*dbmysql.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}

// TouchLastMessage bumps the freshness timestamp. Last write wins; concurrent
// sends race harmlessly here.
func (r *conversationRepository) TouchLastMessage(ctx context.Context, id string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Conversation{}).
		Where("id = ?", id).
		Update("last_message_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"dmhub/internal/dbmysql"

	"gorm.io/gorm"
)

// BlockRepository reads the directed block edges written by the moderation
// flow. A single direction is stored; both directions are checked at use time.
type BlockRepository interface {
	IsBlockedEitherWay(ctx context.Context, a, b string) (bool, error)
	BlockedEitherWaySet(ctx context.Context, userID string) (map[string]struct{}, error)
}

type blockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) IsBlockedEitherWay(ctx context.Context, a, b string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check block: %w", err)
	}
	return count > 0, nil
}

// BlockedEitherWaySet returns every counterpart the user has blocked or been
// blocked by, as a set. Listing and unread totals use it to soft-hide whole
// conversations in one pass instead of a per-row block query.
func (r *blockRepository) BlockedEitherWaySet(ctx context.Context, userID string) (map[string]struct{}, error) {
	var blocks []*dbmysql.Block
	err := r.db.WithContext(ctx).
		Where("blocker_id = ? OR blocked_id = ?", userID, userID).
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load block set: %w", err)
	}

	set := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		if b.BlockerID == userID {
			set[b.BlockedID] = struct{}{}
		} else {
			set[b.BlockerID] = struct{}{}
		}
	}
	return set, nil
}

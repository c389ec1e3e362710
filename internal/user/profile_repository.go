package user

import (
	"context"
	"errors"
	"fmt"

	"dmhub/internal/dbmysql"

	"gorm.io/gorm"
)

// ProfileRepository is the read-only view of users the DM service needs for
// conversation-list decoration. The user service owns the rows.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*dbmysql.User, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetProfile(ctx context.Context, userID string) (*dbmysql.User, error) {
	var u dbmysql.User
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, "active").
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &u, nil
}

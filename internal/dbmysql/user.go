package dbmysql

import (
	"time"
)

// User rows are owned by the platform's user service; the DM service only
// reads them to decorate conversation lists.
type User struct {
	UserID      string `gorm:"primaryKey;size:36"`
	Handle      string `gorm:"size:50;uniqueIndex"`
	DisplayName string `gorm:"size:100"`
	AvatarRef   string `gorm:"size:64"` // GridFS file id, resolved by the media server
	Status      string `gorm:"size:20;default:'active'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package dbmysql

import (
	"time"
)

// Block is a directed edge: BlockerID no longer wants to hear from BlockedID.
// Enforcement is bidirectional at query time; the row itself stays directed.
// Rows are written by the moderation flow, this service only reads them.
type Block struct {
	ID        uint   `gorm:"primaryKey"`
	BlockerID string `gorm:"size:36;not null;index:idx_blocker_blocked,unique"`
	BlockedID string `gorm:"size:36;not null;index:idx_blocker_blocked,unique"`
	CreatedAt time.Time
}

package dbmysql

import (
	"time"
)

// Message is one immutable direct message. ReadAt stays nil until the
// counterpart marks the conversation read; it never reverts.
type Message struct {
	ID             uint      `gorm:"primaryKey"`
	ConversationID string    `gorm:"index;size:36;not null"`
	SenderID       string    `gorm:"index;size:36;not null"`
	Content        string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"index"`
	ReadAt         *time.Time
}

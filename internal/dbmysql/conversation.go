package dbmysql

import (
	"strings"
	"time"
)

// Conversation is the unique thread for one unordered pair of users.
// PairKey is the canonical participant pair; the unique index on it is what
// guarantees at most one row per pair even under concurrent creates.
type Conversation struct {
	ID            string `gorm:"primaryKey;size:36"`
	ParticipantA  string `gorm:"size:36;not null;index"`
	ParticipantB  string `gorm:"size:36;not null;index"`
	PairKey       string `gorm:"size:73;not null;uniqueIndex"`
	CreatedAt     time.Time
	LastMessageAt time.Time `gorm:"index"`
}

// PairKeyFor returns the canonical pair key for two user ids, independent of
// argument order.
func PairKeyFor(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + ":" + b
}

// HasParticipant reports whether userID is one of the two members.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// CounterpartOf returns the other member of the conversation.
func (c *Conversation) CounterpartOf(userID string) string {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

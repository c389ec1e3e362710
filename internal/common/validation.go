package common

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the default content bound; deployments override it
// through configuration.
const MaxMessageLength = 2000

var (
	ErrEmptyContent   = errors.New("message content cannot be empty")
	ErrContentTooLong = errors.New("message content exceeds the maximum length")
)

// ValidateMessageContent trims the content and checks the length bounds.
// Returns the trimmed content; length is counted in runes, not bytes.
func ValidateMessageContent(content string, maxLength int) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > maxLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

// TruncateForPreview shortens a message body for conversation-list previews.
func TruncateForPreview(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}

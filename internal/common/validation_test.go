package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMessageContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "plain message",
			content: "hello there",
			want:    "hello there",
		},
		{
			name:    "trims surrounding whitespace",
			content: "  hi  ",
			want:    "hi",
		},
		{
			name:    "empty",
			content: "",
			wantErr: ErrEmptyContent,
		},
		{
			name:    "whitespace only",
			content: " \t\n ",
			wantErr: ErrEmptyContent,
		},
		{
			name:    "exactly 2000 characters",
			content: strings.Repeat("a", 2000),
			want:    strings.Repeat("a", 2000),
		},
		{
			name:    "2001 characters",
			content: strings.Repeat("a", 2001),
			wantErr: ErrContentTooLong,
		},
		{
			name:    "2000 multibyte runes",
			content: strings.Repeat("é", 2000),
			want:    strings.Repeat("é", 2000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateMessageContent(tt.content, MaxMessageLength)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestValidateMessageContent_CustomLimit(t *testing.T) {
	got, err := ValidateMessageContent("short enough", 20)
	assert.NoError(t, err)
	assert.Equal(t, "short enough", got)

	_, err = ValidateMessageContent(strings.Repeat("x", 21), 20)
	assert.ErrorIs(t, err, ErrContentTooLong)
}

func TestTruncateForPreview(t *testing.T) {
	assert.Equal(t, "hi", TruncateForPreview("hi", 50))
	assert.Equal(t, strings.Repeat("a", 50), TruncateForPreview(strings.Repeat("a", 50), 50))
	assert.Equal(t, strings.Repeat("a", 50)+"...", TruncateForPreview(strings.Repeat("a", 51), 50))
	// rune-safe truncation
	assert.Equal(t, strings.Repeat("é", 50)+"...", TruncateForPreview(strings.Repeat("é", 60), 50))
}

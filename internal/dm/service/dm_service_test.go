package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dmhub/internal/config"
	"dmhub/internal/dbmysql"
	"dmhub/internal/dm/repository"
	repomocks "dmhub/internal/dm/repository/mocks"
	usermocks "dmhub/internal/user/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{MediaBaseURL: "/media"},
		Messaging: config.MessagingConfig{
			RateLimitPerWindow: 5,
			RateWindowHours:    24,
			MaxContentLength:   2000,
			DefaultPageSize:    20,
			MaxPageSize:        100,
		},
	}
}

type serviceMocks struct {
	conversations *repomocks.MockConversationRepository
	messages      *repomocks.MockMessageRepository
	blocks        *repomocks.MockBlockRepository
	profiles      *usermocks.MockProfileRepository
}

func newTestService(t *testing.T) (DMService, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		conversations: repomocks.NewMockConversationRepository(ctrl),
		messages:      repomocks.NewMockMessageRepository(ctrl),
		blocks:        repomocks.NewMockBlockRepository(ctrl),
		profiles:      usermocks.NewMockProfileRepository(ctrl),
	}
	svc := NewDMService(m.conversations, m.messages, m.blocks, m.profiles, testConfig())
	return svc, m
}

func TestDMService_SendMessage_Validation(t *testing.T) {
	tests := []struct {
		name      string
		sender    string
		recipient string
		content   string
		wantErr   error
	}{
		{
			name:      "sender equals recipient",
			sender:    "user-a",
			recipient: "user-a",
			content:   "hi",
			wantErr:   ErrSelfTarget,
		},
		{
			name:      "empty content",
			sender:    "user-a",
			recipient: "user-b",
			content:   "",
			wantErr:   ErrEmptyContent,
		},
		{
			name:      "whitespace only content",
			sender:    "user-a",
			recipient: "user-b",
			content:   "   \t\n  ",
			wantErr:   ErrEmptyContent,
		},
		{
			name:      "content too long",
			sender:    "user-a",
			recipient: "user-b",
			content:   strings.Repeat("x", 2001),
			wantErr:   ErrContentTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no repository call is expected for any of these
			svc, _ := newTestService(t)

			_, err := svc.SendMessage(context.Background(), tt.sender, tt.recipient, tt.content)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDMService_SendMessage_Blocked(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	// the repo checks both directions in one query, so a block from either
	// side is the same answer here
	m.blocks.EXPECT().
		IsBlockedEitherWay(ctx, "user-a", "user-b").
		Return(true, nil)

	_, err := svc.SendMessage(ctx, "user-a", "user-b", "hello")
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestDMService_SendMessage_RateLimited(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.blocks.EXPECT().
		IsBlockedEitherWay(ctx, "user-a", "user-b").
		Return(false, nil)
	m.messages.EXPECT().
		CountSentSince(ctx, "user-a", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, since time.Time) (int64, error) {
			assert.WithinDuration(t, time.Now().UTC().Add(-24*time.Hour), since, 2*time.Second)
			return 5, nil
		})

	_, err := svc.SendMessage(ctx, "user-a", "user-b", "one too many")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestDMService_SendMessage_Success(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	existing := &dbmysql.Conversation{
		ID:           "conv-123",
		ParticipantA: "user-a",
		ParticipantB: "user-b",
		PairKey:      dbmysql.PairKeyFor("user-a", "user-b"),
	}

	m.blocks.EXPECT().IsBlockedEitherWay(ctx, "user-a", "user-b").Return(false, nil)
	m.messages.EXPECT().CountSentSince(ctx, "user-a", gomock.Any()).Return(int64(4), nil)
	m.conversations.EXPECT().FindByPair(ctx, "user-a", "user-b").Return(existing, nil)
	m.messages.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *dbmysql.Message) error {
			assert.Equal(t, "conv-123", msg.ConversationID)
			assert.Equal(t, "user-a", msg.SenderID)
			assert.Equal(t, "hello", msg.Content) // trimmed
			assert.Nil(t, msg.ReadAt)
			assert.WithinDuration(t, time.Now(), msg.CreatedAt, time.Second)
			return nil
		})
	m.conversations.EXPECT().TouchLastMessage(ctx, "conv-123", gomock.Any()).Return(nil)

	conversationID, err := svc.SendMessage(ctx, "user-a", "user-b", "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "conv-123", conversationID)
}

func TestDMService_SendMessage_ConfiguredContentLimit(t *testing.T) {
	// the length bound comes from configuration, not a hard constant
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		conversations: repomocks.NewMockConversationRepository(ctrl),
		messages:      repomocks.NewMockMessageRepository(ctrl),
		blocks:        repomocks.NewMockBlockRepository(ctrl),
		profiles:      usermocks.NewMockProfileRepository(ctrl),
	}
	cfg := testConfig()
	cfg.Messaging.MaxContentLength = 10
	svc := NewDMService(m.conversations, m.messages, m.blocks, m.profiles, cfg)

	_, err := svc.SendMessage(context.Background(), "user-a", "user-b", strings.Repeat("x", 11))
	assert.ErrorIs(t, err, ErrContentTooLong)
}

func TestDMService_SendMessage_ExactlyMaxLength(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()
	content := strings.Repeat("a", 2000)

	existing := &dbmysql.Conversation{ID: "conv-123", ParticipantA: "user-a", ParticipantB: "user-b"}

	m.blocks.EXPECT().IsBlockedEitherWay(ctx, "user-a", "user-b").Return(false, nil)
	m.messages.EXPECT().CountSentSince(ctx, "user-a", gomock.Any()).Return(int64(0), nil)
	m.conversations.EXPECT().FindByPair(ctx, "user-a", "user-b").Return(existing, nil)
	m.messages.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	m.conversations.EXPECT().TouchLastMessage(ctx, "conv-123", gomock.Any()).Return(nil)

	_, err := svc.SendMessage(ctx, "user-a", "user-b", content)
	assert.NoError(t, err)
}

func TestDMService_SendMessage_FirstContactCreatesConversation(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.blocks.EXPECT().IsBlockedEitherWay(ctx, "user-b", "user-a").Return(false, nil)
	m.messages.EXPECT().CountSentSince(ctx, "user-b", gomock.Any()).Return(int64(0), nil)
	m.conversations.EXPECT().FindByPair(ctx, "user-b", "user-a").Return(nil, nil)
	m.conversations.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, conv *dbmysql.Conversation) error {
			assert.NotEmpty(t, conv.ID)
			assert.Equal(t, dbmysql.PairKeyFor("user-a", "user-b"), conv.PairKey)
			assert.True(t, conv.HasParticipant("user-a"))
			assert.True(t, conv.HasParticipant("user-b"))
			assert.Equal(t, conv.CreatedAt, conv.LastMessageAt)
			return nil
		})
	m.messages.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	m.conversations.EXPECT().TouchLastMessage(ctx, gomock.Any(), gomock.Any()).Return(nil)

	conversationID, err := svc.SendMessage(ctx, "user-b", "user-a", "first contact")
	require.NoError(t, err)
	assert.NotEmpty(t, conversationID)
}

func TestDMService_SendMessage_TouchFailureDoesNotFailSend(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	existing := &dbmysql.Conversation{ID: "conv-123", ParticipantA: "user-a", ParticipantB: "user-b"}

	m.blocks.EXPECT().IsBlockedEitherWay(ctx, "user-a", "user-b").Return(false, nil)
	m.messages.EXPECT().CountSentSince(ctx, "user-a", gomock.Any()).Return(int64(0), nil)
	m.conversations.EXPECT().FindByPair(ctx, "user-a", "user-b").Return(existing, nil)
	m.messages.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	m.conversations.EXPECT().TouchLastMessage(ctx, "conv-123", gomock.Any()).Return(assert.AnError)

	conversationID, err := svc.SendMessage(ctx, "user-a", "user-b", "hi")
	require.NoError(t, err)
	assert.Equal(t, "conv-123", conversationID)
}

func TestDMService_GetOrCreateConversation(t *testing.T) {
	t.Run("rejects self", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetOrCreateConversation(context.Background(), "user-a", "user-a")
		assert.ErrorIs(t, err, ErrSelfTarget)
	})

	t.Run("returns existing conversation", func(t *testing.T) {
		svc, m := newTestService(t)
		ctx := context.Background()

		existing := &dbmysql.Conversation{ID: "conv-123"}
		m.conversations.EXPECT().FindByPair(ctx, "user-a", "user-b").Return(existing, nil)

		conv, err := svc.GetOrCreateConversation(ctx, "user-a", "user-b")
		require.NoError(t, err)
		assert.Equal(t, "conv-123", conv.ID)
	})

	t.Run("creates with canonical pair key", func(t *testing.T) {
		svc, m := newTestService(t)
		ctx := context.Background()

		m.conversations.EXPECT().FindByPair(ctx, "user-b", "user-a").Return(nil, nil)
		m.conversations.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, conv *dbmysql.Conversation) error {
				assert.Equal(t, "user-a:user-b", conv.PairKey)
				return nil
			})

		conv, err := svc.GetOrCreateConversation(ctx, "user-b", "user-a")
		require.NoError(t, err)
		assert.NotEmpty(t, conv.ID)
	})

	t.Run("lost race re-reads the winner", func(t *testing.T) {
		svc, m := newTestService(t)
		ctx := context.Background()

		winner := &dbmysql.Conversation{ID: "conv-winner"}

		gomock.InOrder(
			m.conversations.EXPECT().FindByPair(ctx, "user-a", "user-b").Return(nil, nil),
			m.conversations.EXPECT().Create(ctx, gomock.Any()).Return(repository.ErrConversationExists),
			m.conversations.EXPECT().FindByPair(ctx, "user-a", "user-b").Return(winner, nil),
		)

		conv, err := svc.GetOrCreateConversation(ctx, "user-a", "user-b")
		require.NoError(t, err)
		assert.Equal(t, "conv-winner", conv.ID)
	})
}

func TestDMService_MarkConversationRead(t *testing.T) {
	conv := &dbmysql.Conversation{
		ID:           "conv-123",
		ParticipantA: "user-a",
		ParticipantB: "user-b",
	}

	t.Run("conversation not found", func(t *testing.T) {
		svc, m := newTestService(t)
		ctx := context.Background()

		m.conversations.EXPECT().FindByID(ctx, "conv-missing").Return(nil, nil)

		_, err := svc.MarkConversationRead(ctx, "user-a", "conv-missing")
		assert.ErrorIs(t, err, ErrConversationNotFound)
	})

	t.Run("not a participant", func(t *testing.T) {
		svc, m := newTestService(t)
		ctx := context.Background()

		m.conversations.EXPECT().FindByID(ctx, "conv-123").Return(conv, nil)

		_, err := svc.MarkConversationRead(ctx, "user-intruder", "conv-123")
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("marks counterpart messages", func(t *testing.T) {
		svc, m := newTestService(t)
		ctx := context.Background()

		m.conversations.EXPECT().FindByID(ctx, "conv-123").Return(conv, nil)
		m.messages.EXPECT().
			MarkRead(ctx, "conv-123", "user-b", gomock.Any()).
			Return(int64(3), nil)

		marked, err := svc.MarkConversationRead(ctx, "user-b", "conv-123")
		require.NoError(t, err)
		assert.Equal(t, int64(3), marked)
	})

	t.Run("idempotent second call", func(t *testing.T) {
		svc, m := newTestService(t)
		ctx := context.Background()

		m.conversations.EXPECT().FindByID(ctx, "conv-123").Return(conv, nil).Times(2)
		gomock.InOrder(
			m.messages.EXPECT().MarkRead(ctx, "conv-123", "user-b", gomock.Any()).Return(int64(2), nil),
			m.messages.EXPECT().MarkRead(ctx, "conv-123", "user-b", gomock.Any()).Return(int64(0), nil),
		)

		first, err := svc.MarkConversationRead(ctx, "user-b", "conv-123")
		require.NoError(t, err)
		assert.Equal(t, int64(2), first)

		second, err := svc.MarkConversationRead(ctx, "user-b", "conv-123")
		require.NoError(t, err)
		assert.Equal(t, int64(0), second)
	})
}

package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"dmhub/internal/common"
	"dmhub/internal/config"
	"dmhub/internal/dbmysql"
	"dmhub/internal/dm/repository"
	"dmhub/internal/user"

	"github.com/google/uuid"
)

const previewLength = 50

// ConversationSummary is one row of the conversation list.
type ConversationSummary struct {
	ConversationID     string    `json:"conversation_id"`
	CounterpartID      string    `json:"counterpart_id"`
	CounterpartName    string    `json:"counterpart_name"`
	CounterpartAvatar  string    `json:"counterpart_avatar,omitempty"`
	LastMessagePreview string    `json:"last_message_preview"`
	LastMessageAt      time.Time `json:"last_message_at"`
	UnreadCount        int64     `json:"unread_count"`
}

// MessageView is one message as returned to callers.
type MessageView struct {
	ID        uint      `json:"id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// MessagePage is a chronological slice of a conversation plus the cursor for
// the next (older) page, when one remains.
type MessagePage struct {
	Messages   []MessageView `json:"messages"`
	NextCursor *string       `json:"next_cursor,omitempty"`
}

// DMService is the direct-messaging interface exposed to the handler layer
type DMService interface {
	SendMessage(ctx context.Context, senderID, recipientID, content string) (string, error)
	GetOrCreateConversation(ctx context.Context, selfID, otherID string) (*dbmysql.Conversation, error)
	MarkConversationRead(ctx context.Context, actorID, conversationID string) (int64, error)
	ListConversations(ctx context.Context, actorID string) ([]*ConversationSummary, error)
	ListMessages(ctx context.Context, actorID, conversationID string, limit int, cursor *string) (*MessagePage, error)
	UnreadCount(ctx context.Context, actorID string) (int64, error)
	RemainingQuota(ctx context.Context, senderID string) (int, error)
}

type dmService struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	blocks        repository.BlockRepository
	profiles      user.ProfileRepository
	limiter       *RateLimiter
	mediaBaseURL  string
	maxContent    int
	defaultPage   int
	maxPage       int
}

// Constructor used in DI/wire
func NewDMService(
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	blocks repository.BlockRepository,
	profiles user.ProfileRepository,
	cfg *config.Config,
) DMService {
	window := time.Duration(cfg.Messaging.RateWindowHours) * time.Hour
	return &dmService{
		conversations: conversations,
		messages:      messages,
		blocks:        blocks,
		profiles:      profiles,
		limiter:       NewRateLimiter(messages, cfg.Messaging.RateLimitPerWindow, window),
		mediaBaseURL:  cfg.Server.MediaBaseURL,
		maxContent:    cfg.Messaging.MaxContentLength,
		defaultPage:   cfg.Messaging.DefaultPageSize,
		maxPage:       cfg.Messaging.MaxPageSize,
	}
}

// SendMessage runs the full send pipeline: validation, block check, rate
// check, conversation resolution, append, freshness bump. Returns the id of
// the conversation the message landed in.
func (s *dmService) SendMessage(ctx context.Context, senderID, recipientID, content string) (string, error) {
	if senderID == recipientID {
		return "", ErrSelfTarget
	}

	content, err := common.ValidateMessageContent(content, s.maxContent)
	if err != nil {
		return "", err
	}

	blocked, err := s.blocks.IsBlockedEitherWay(ctx, senderID, recipientID)
	if err != nil {
		return "", err
	}
	if blocked {
		return "", ErrBlocked
	}

	ok, err := s.limiter.HasQuota(ctx, senderID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrRateLimited
	}

	conv, err := s.GetOrCreateConversation(ctx, senderID, recipientID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	msg := &dbmysql.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      now,
	}
	if err := s.messages.Save(ctx, msg); err != nil {
		return "", err
	}

	if err := s.conversations.TouchLastMessage(ctx, conv.ID, now); err != nil {
		// the message itself is persisted; a stale freshness timestamp
		// self-heals on the next send
		log.Printf("touch last_message_at failed for %s: %v", conv.ID, err)
	}

	return conv.ID, nil
}

// GetOrCreateConversation resolves the single conversation for an unordered
// user pair, creating it on first contact. Under concurrent calls the unique
// pair key makes one writer win; the loser re-reads the winning row.
func (s *dmService) GetOrCreateConversation(ctx context.Context, selfID, otherID string) (*dbmysql.Conversation, error) {
	if selfID == otherID {
		return nil, ErrSelfTarget
	}

	conv, err := s.conversations.FindByPair(ctx, selfID, otherID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	now := time.Now().UTC()
	conv = &dbmysql.Conversation{
		ID:            uuid.NewString(),
		ParticipantA:  selfID,
		ParticipantB:  otherID,
		PairKey:       dbmysql.PairKeyFor(selfID, otherID),
		CreatedAt:     now,
		LastMessageAt: now,
	}
	err = s.conversations.Create(ctx, conv)
	if err == repository.ErrConversationExists {
		// lost the race, use the winner's row
		return s.conversations.FindByPair(ctx, selfID, otherID)
	}
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// MarkConversationRead stamps every unread counterpart message and returns
// the number transitioned. Calling again without new messages transitions 0.
func (s *dmService) MarkConversationRead(ctx context.Context, actorID, conversationID string) (int64, error) {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	if conv == nil {
		return 0, ErrConversationNotFound
	}
	if !conv.HasParticipant(actorID) {
		return 0, ErrNotParticipant
	}

	return s.messages.MarkRead(ctx, conversationID, actorID, time.Now().UTC())
}

// ListConversations builds the actor's conversation list: blocked
// counterparts soft-hidden, newest activity first, each entry decorated with
// the counterpart profile, a preview of the latest message and the unread
// count.
func (s *dmService) ListConversations(ctx context.Context, actorID string) ([]*ConversationSummary, error) {
	hidden, err := s.blocks.BlockedEitherWaySet(ctx, actorID)
	if err != nil {
		return nil, err
	}

	convs, err := s.conversations.ListByParticipant(ctx, actorID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		counterpart := conv.CounterpartOf(actorID)
		if _, isHidden := hidden[counterpart]; isHidden {
			continue
		}

		summary := &ConversationSummary{
			ConversationID: conv.ID,
			CounterpartID:  counterpart,
			LastMessageAt:  conv.LastMessageAt,
		}

		latest, err := s.messages.LatestInConversation(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			summary.LastMessagePreview = common.TruncateForPreview(latest.Content, previewLength)
		}

		unread, err := s.messages.UnreadCount(ctx, conv.ID, actorID)
		if err != nil {
			return nil, err
		}
		summary.UnreadCount = unread

		s.decorateCounterpart(ctx, summary)
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// decorateCounterpart fills in display name and avatar URL. Profile lookup is
// cosmetic: failures degrade to a placeholder instead of failing the listing.
func (s *dmService) decorateCounterpart(ctx context.Context, summary *ConversationSummary) {
	profile, err := s.profiles.GetProfile(ctx, summary.CounterpartID)
	if err != nil || profile == nil {
		if err != nil {
			log.Printf("profile lookup failed for %s: %v", summary.CounterpartID, err)
		}
		summary.CounterpartName = "Unknown"
		return
	}
	summary.CounterpartName = profile.DisplayName
	if summary.CounterpartName == "" {
		summary.CounterpartName = profile.Handle
	}
	if profile.AvatarRef != "" {
		summary.CounterpartAvatar = s.mediaBaseURL + "/" + profile.AvatarRef
	}
}

// ListMessages returns one chronological page of a conversation. Callers who
// are not participants get an empty page rather than an error, so an outsider
// cannot tell a hidden conversation from a missing one.
func (s *dmService) ListMessages(ctx context.Context, actorID, conversationID string, limit int, cursor *string) (*MessagePage, error) {
	empty := &MessagePage{Messages: []MessageView{}}

	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil || !conv.HasParticipant(actorID) {
		return empty, nil
	}

	if limit <= 0 {
		limit = s.defaultPage
	}
	if limit > s.maxPage {
		limit = s.maxPage
	}

	var before *dbmysql.Message
	if cursor != nil {
		id, err := strconv.ParseUint(*cursor, 10, 64)
		if err != nil {
			return empty, nil
		}
		before, err = s.messages.FindByID(ctx, uint(id))
		if err != nil {
			return nil, err
		}
		if before == nil || before.ConversationID != conversationID {
			return empty, nil
		}
	}

	// fetch one extra row to learn whether an older page remains
	rows, err := s.messages.ListPage(ctx, conversationID, before, limit+1)
	if err != nil {
		return nil, err
	}

	page := &MessagePage{}
	if len(rows) > limit {
		rows = rows[:limit]
		next := strconv.FormatUint(uint64(rows[len(rows)-1].ID), 10)
		page.NextCursor = &next
	}

	// rows are newest-first internally; pages read oldest-first
	page.Messages = make([]MessageView, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		m := rows[i]
		page.Messages = append(page.Messages, MessageView{
			ID:        m.ID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
			Read:      m.ReadAt != nil,
		})
	}

	return page, nil
}

// UnreadCount totals unread messages across the actor's visible
// conversations, applying the same block exclusion as the listing.
func (s *dmService) UnreadCount(ctx context.Context, actorID string) (int64, error) {
	hidden, err := s.blocks.BlockedEitherWaySet(ctx, actorID)
	if err != nil {
		return 0, err
	}

	convs, err := s.conversations.ListByParticipant(ctx, actorID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, conv := range convs {
		if _, isHidden := hidden[conv.CounterpartOf(actorID)]; isHidden {
			continue
		}
		n, err := s.messages.UnreadCount(ctx, conv.ID, actorID)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (s *dmService) RemainingQuota(ctx context.Context, senderID string) (int, error) {
	return s.limiter.RemainingQuota(ctx, senderID)
}

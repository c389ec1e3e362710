package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dmhub/internal/common"
	"dmhub/internal/dbmysql"
	"dmhub/internal/dm/service"
	svcmocks "dmhub/internal/dm/service/mocks"
)

func setupHandler(t *testing.T) (*svcmocks.MockDMService, *mux.Router) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := svcmocks.NewMockDMService(ctrl)
	router := mux.NewRouter()
	NewDMHandler(svc).RegisterRoutes(router)
	return svc, router
}

// doRequest runs a request with the actor already on the context, the way the
// auth middleware leaves it.
func doRequest(router *mux.Router, method, target, actor, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if actor != "" {
		req = req.WithContext(common.WithActor(req.Context(), actor, actor+"-handle"))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestSendMessage(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := setupHandler(t)
		svc.EXPECT().
			SendMessage(gomock.Any(), "user-a", "user-b", "hello").
			Return("conv-123", nil)

		rec := doRequest(router, "POST", "/v1/dm/messages", "user-a",
			`{"recipient_id":"user-b","content":"hello"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		body := decodeBody(t, rec)
		assert.Equal(t, "conv-123", body["conversation_id"])
	})

	t.Run("missing actor", func(t *testing.T) {
		_, router := setupHandler(t)

		rec := doRequest(router, "POST", "/v1/dm/messages", "",
			`{"recipient_id":"user-b","content":"hello"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "not_authenticated", decodeBody(t, rec)["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		_, router := setupHandler(t)

		rec := doRequest(router, "POST", "/v1/dm/messages", "user-a", `{not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_request", decodeBody(t, rec)["error"])
	})

	t.Run("missing recipient", func(t *testing.T) {
		_, router := setupHandler(t)

		rec := doRequest(router, "POST", "/v1/dm/messages", "user-a", `{"content":"hello"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service errors map to statuses", func(t *testing.T) {
		tests := []struct {
			err    error
			kind   string
			status int
		}{
			{service.ErrSelfTarget, "self_target", http.StatusBadRequest},
			{service.ErrEmptyContent, "empty_content", http.StatusBadRequest},
			{service.ErrContentTooLong, "content_too_long", http.StatusBadRequest},
			{service.ErrBlocked, "blocked", http.StatusForbidden},
			{service.ErrRateLimited, "rate_limited", http.StatusTooManyRequests},
		}

		for _, tt := range tests {
			t.Run(tt.kind, func(t *testing.T) {
				svc, router := setupHandler(t)
				svc.EXPECT().
					SendMessage(gomock.Any(), "user-a", "user-b", gomock.Any()).
					Return("", tt.err)

				rec := doRequest(router, "POST", "/v1/dm/messages", "user-a",
					`{"recipient_id":"user-b","content":"hi"}`)

				assert.Equal(t, tt.status, rec.Code)
				assert.Equal(t, tt.kind, decodeBody(t, rec)["error"])
			})
		}
	})

	t.Run("internal error is not leaked", func(t *testing.T) {
		svc, router := setupHandler(t)
		svc.EXPECT().
			SendMessage(gomock.Any(), "user-a", "user-b", gomock.Any()).
			Return("", assert.AnError)

		rec := doRequest(router, "POST", "/v1/dm/messages", "user-a",
			`{"recipient_id":"user-b","content":"hi"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "internal", body["error"])
		assert.Equal(t, "internal error", body["message"])
	})
}

func TestGetOrCreateConversation(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc, router := setupHandler(t)
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		svc.EXPECT().
			GetOrCreateConversation(gomock.Any(), "user-a", "user-b").
			Return(&dbmysql.Conversation{
				ID:            "conv-123",
				ParticipantA:  "user-a",
				ParticipantB:  "user-b",
				CreatedAt:     now,
				LastMessageAt: now,
			}, nil)

		rec := doRequest(router, "POST", "/v1/dm/conversations", "user-a",
			`{"user_id":"user-b"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "conv-123", decodeBody(t, rec)["conversation_id"])
	})

	t.Run("self target", func(t *testing.T) {
		svc, router := setupHandler(t)
		svc.EXPECT().
			GetOrCreateConversation(gomock.Any(), "user-a", "user-a").
			Return(nil, service.ErrSelfTarget)

		rec := doRequest(router, "POST", "/v1/dm/conversations", "user-a",
			`{"user_id":"user-a"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "self_target", decodeBody(t, rec)["error"])
	})

	t.Run("missing user_id", func(t *testing.T) {
		_, router := setupHandler(t)

		rec := doRequest(router, "POST", "/v1/dm/conversations", "user-a", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListConversations(t *testing.T) {
	svc, router := setupHandler(t)
	svc.EXPECT().
		ListConversations(gomock.Any(), "user-a").
		Return([]*service.ConversationSummary{
			{
				ConversationID:     "conv-123",
				CounterpartID:      "user-b",
				CounterpartName:    "Bea",
				LastMessagePreview: "see you there",
				UnreadCount:        2,
			},
		}, nil)

	rec := doRequest(router, "GET", "/v1/dm/conversations", "user-a", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	convs, ok := body["conversations"].([]interface{})
	require.True(t, ok)
	require.Len(t, convs, 1)
	first := convs[0].(map[string]interface{})
	assert.Equal(t, "conv-123", first["conversation_id"])
	assert.Equal(t, float64(2), first["unread_count"])
}

func TestListMessages(t *testing.T) {
	t.Run("passes limit and cursor through", func(t *testing.T) {
		svc, router := setupHandler(t)
		next := "42"
		svc.EXPECT().
			ListMessages(gomock.Any(), "user-a", "conv-123", 10, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, _ int, cursor *string) (*service.MessagePage, error) {
				require.NotNil(t, cursor)
				assert.Equal(t, "77", *cursor)
				return &service.MessagePage{
					Messages:   []service.MessageView{{ID: 42, SenderID: "user-b", Content: "hi"}},
					NextCursor: &next,
				}, nil
			})

		rec := doRequest(router, "GET", "/v1/dm/conversations/conv-123/messages?limit=10&cursor=77", "user-a", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "42", body["next_cursor"])
	})

	t.Run("defaults when limit and cursor are absent", func(t *testing.T) {
		svc, router := setupHandler(t)
		svc.EXPECT().
			ListMessages(gomock.Any(), "user-a", "conv-123", 0, nil).
			Return(&service.MessagePage{Messages: []service.MessageView{}}, nil)

		rec := doRequest(router, "GET", "/v1/dm/conversations/conv-123/messages", "user-a", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		_, hasNext := body["next_cursor"]
		assert.False(t, hasNext)
	})

	t.Run("rejects bad limit", func(t *testing.T) {
		_, router := setupHandler(t)

		for _, raw := range []string{"abc", "-1"} {
			rec := doRequest(router, "GET", "/v1/dm/conversations/conv-123/messages?limit="+raw, "user-a", "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", raw)
		}
	})
}

func TestMarkRead(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc, router := setupHandler(t)
		svc.EXPECT().
			MarkConversationRead(gomock.Any(), "user-a", "conv-123").
			Return(int64(3), nil)

		rec := doRequest(router, "POST", "/v1/dm/conversations/conv-123/read", "user-a", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(3), decodeBody(t, rec)["marked_count"])
	})

	t.Run("unknown conversation", func(t *testing.T) {
		svc, router := setupHandler(t)
		svc.EXPECT().
			MarkConversationRead(gomock.Any(), "user-a", "conv-missing").
			Return(int64(0), service.ErrConversationNotFound)

		rec := doRequest(router, "POST", "/v1/dm/conversations/conv-missing/read", "user-a", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "conversation_not_found", decodeBody(t, rec)["error"])
	})

	t.Run("not a participant", func(t *testing.T) {
		svc, router := setupHandler(t)
		svc.EXPECT().
			MarkConversationRead(gomock.Any(), "user-c", "conv-123").
			Return(int64(0), service.ErrNotParticipant)

		rec := doRequest(router, "POST", "/v1/dm/conversations/conv-123/read", "user-c", "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "not_participant", decodeBody(t, rec)["error"])
	})
}

func TestUnreadCount(t *testing.T) {
	svc, router := setupHandler(t)
	svc.EXPECT().
		UnreadCount(gomock.Any(), "user-a").
		Return(int64(7), nil)

	rec := doRequest(router, "GET", "/v1/dm/unread-count", "user-a", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(7), decodeBody(t, rec)["unread"])
}

func TestRemainingQuota(t *testing.T) {
	svc, router := setupHandler(t)
	svc.EXPECT().
		RemainingQuota(gomock.Any(), "user-a").
		Return(2, nil)

	rec := doRequest(router, "GET", "/v1/dm/quota", "user-a", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeBody(t, rec)["remaining"])
}

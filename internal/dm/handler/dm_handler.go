// Package handler wires HTTP requests to the DM service
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"dmhub/internal/common"
	"dmhub/internal/dm/service"

	"github.com/gorilla/mux"
)

type DMHandler struct {
	dmService service.DMService
}

func NewDMHandler(dmService service.DMService) *DMHandler {
	return &DMHandler{dmService: dmService}
}

// RegisterRoutes mounts the DM routes. The router is expected to already
// carry the auth middleware; every handler still fails closed on a missing
// identity.
func (h *DMHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/v1/dm/messages", h.sendMessage).Methods("POST")
	r.HandleFunc("/v1/dm/conversations", h.getOrCreateConversation).Methods("POST")
	r.HandleFunc("/v1/dm/conversations", h.listConversations).Methods("GET")
	r.HandleFunc("/v1/dm/conversations/{id}/messages", h.listMessages).Methods("GET")
	r.HandleFunc("/v1/dm/conversations/{id}/read", h.markRead).Methods("POST")
	r.HandleFunc("/v1/dm/unread-count", h.unreadCount).Methods("GET")
	r.HandleFunc("/v1/dm/quota", h.remainingQuota).Methods("GET")
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
}

func (h *DMHandler) sendMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.ActorID(r.Context())
	if !ok {
		writeError(w, service.ErrNotAuthenticated)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.RecipientID == "" {
		writeBadRequest(w, "recipient_id is required")
		return
	}

	conversationID, err := h.dmService.SendMessage(r.Context(), actor, req.RecipientID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"conversation_id": conversationID,
	})
}

type getOrCreateRequest struct {
	UserID string `json:"user_id"`
}

func (h *DMHandler) getOrCreateConversation(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.ActorID(r.Context())
	if !ok {
		writeError(w, service.ErrNotAuthenticated)
		return
	}

	var req getOrCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeBadRequest(w, "user_id is required")
		return
	}

	conv, err := h.dmService.GetOrCreateConversation(r.Context(), actor, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"conversation_id": conv.ID,
		"created_at":      conv.CreatedAt,
		"last_message_at": conv.LastMessageAt,
	})
}

func (h *DMHandler) listConversations(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.ActorID(r.Context())
	if !ok {
		writeError(w, service.ErrNotAuthenticated)
		return
	}

	summaries, err := h.dmService.ListConversations(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"conversations": summaries,
	})
}

func (h *DMHandler) listMessages(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.ActorID(r.Context())
	if !ok {
		writeError(w, service.ErrNotAuthenticated)
		return
	}

	conversationID := mux.Vars(r)["id"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	var cursor *string
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		cursor = &raw
	}

	page, err := h.dmService.ListMessages(r.Context(), actor, conversationID, limit, cursor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *DMHandler) markRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.ActorID(r.Context())
	if !ok {
		writeError(w, service.ErrNotAuthenticated)
		return
	}

	conversationID := mux.Vars(r)["id"]

	marked, err := h.dmService.MarkConversationRead(r.Context(), actor, conversationID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{
		"marked_count": marked,
	})
}

func (h *DMHandler) unreadCount(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.ActorID(r.Context())
	if !ok {
		writeError(w, service.ErrNotAuthenticated)
		return
	}

	unread, err := h.dmService.UnreadCount(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{
		"unread": unread,
	})
}

func (h *DMHandler) remainingQuota(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.ActorID(r.Context())
	if !ok {
		writeError(w, service.ErrNotAuthenticated)
		return
	}

	remaining, err := h.dmService.RemainingQuota(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"remaining": remaining,
	})
}

// errorKind maps a service error to the wire kind and HTTP status.
func errorKind(err error) (string, int) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return "not_authenticated", http.StatusUnauthorized
	case errors.Is(err, service.ErrSelfTarget):
		return "self_target", http.StatusBadRequest
	case errors.Is(err, service.ErrEmptyContent):
		return "empty_content", http.StatusBadRequest
	case errors.Is(err, service.ErrContentTooLong):
		return "content_too_long", http.StatusBadRequest
	case errors.Is(err, service.ErrBlocked):
		return "blocked", http.StatusForbidden
	case errors.Is(err, service.ErrRateLimited):
		return "rate_limited", http.StatusTooManyRequests
	case errors.Is(err, service.ErrConversationNotFound):
		return "conversation_not_found", http.StatusNotFound
	case errors.Is(err, service.ErrNotParticipant):
		return "not_participant", http.StatusForbidden
	default:
		return "internal", http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind, status := errorKind(err)
	if status == http.StatusInternalServerError {
		// do not leak storage details to the caller
		log.Printf("internal error: %v", err)
		writeJSON(w, status, map[string]string{
			"error":   kind,
			"message": "internal error",
		})
		return
	}
	writeJSON(w, status, map[string]string{
		"error":   kind,
		"message": err.Error(),
	})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error":   "invalid_request",
		"message": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

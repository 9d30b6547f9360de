package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"roomfinder/internal/app/dto"
	"roomfinder/internal/app/policies"
	"roomfinder/internal/domain/messaging"
)

// ChatHandler exposes the conversation store over HTTP.
type ChatHandler struct {
	Store    *messaging.Store
	Notifier policies.MessageNotifier
	Logger   *slog.Logger
}

// ListMyConversations returns the caller's inbox with per-thread unread counts.
func (h ChatHandler) ListMyConversations(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "messaging unavailable"})
		return
	}
	conversations := h.Store.ConversationsFor(p.ID)
	collection := dto.ConversationList{
		Items:       make([]dto.Conversation, 0, len(conversations)),
		TotalUnread: h.Store.TotalUnreadFor(p.ID),
	}
	for _, conversation := range conversations {
		unread, err := h.Store.UnreadCount(conversation.ID, p.ID)
		if err != nil {
			continue
		}
		collection.Items = append(collection.Items, dto.MapConversation(conversation, unread))
	}
	c.JSON(http.StatusOK, collection)
}

// StartConversation finds or creates the thread between the caller and a peer
// about one property. Repeating the call returns the same thread.
func (h ChatHandler) StartConversation(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "messaging unavailable"})
		return
	}
	var req struct {
		PeerID  string `json:"peer_id"`
		Subject string `json:"subject"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	conversationID, err := h.Store.FindOrCreate(p.ID, req.PeerID, req.Subject)
	if err != nil {
		h.respondChatError(c, err, "start conversation", "user_id", p.ID, "peer_id", req.PeerID)
		return
	}
	conversation, err := h.Store.Get(conversationID)
	if err != nil {
		h.respondChatError(c, err, "load conversation", "conversation_id", conversationID)
		return
	}
	unread, _ := h.Store.UnreadCount(conversationID, p.ID)
	c.JSON(http.StatusOK, dto.MapConversation(conversation, unread))
}

// ListMessages returns the full thread if the caller is a participant.
func (h ChatHandler) ListMessages(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "messaging unavailable"})
		return
	}
	conversation, ok := h.loadParticipantConversation(c, p)
	if !ok {
		return
	}
	collection := dto.ChatMessageList{Items: make([]dto.ChatMessage, 0, len(conversation.Messages))}
	for _, message := range conversation.Messages {
		collection.Items = append(collection.Items, dto.MapChatMessage(message))
	}
	c.JSON(http.StatusOK, collection)
}

// SendMessage appends a message and notifies the counterpart out of band.
func (h ChatHandler) SendMessage(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "messaging unavailable"})
		return
	}
	conversationID := strings.TrimSpace(c.Param("id"))
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	message, err := h.Store.Post(conversationID, p.ID, req.Text)
	if err != nil {
		h.respondChatError(c, err, "send message", "conversation_id", conversationID, "user_id", p.ID)
		return
	}
	h.notify(c, message)
	c.JSON(http.StatusCreated, dto.MapChatMessage(message))
}

// MarkRead moves the caller's read cursor past the thread's messages.
func (h ChatHandler) MarkRead(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "messaging unavailable"})
		return
	}
	conversationID := strings.TrimSpace(c.Param("id"))
	if err := h.Store.MarkRead(conversationID, p.ID); err != nil {
		h.respondChatError(c, err, "mark read", "conversation_id", conversationID, "user_id", p.ID)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h ChatHandler) loadParticipantConversation(c *gin.Context, p principal) (*messaging.Conversation, bool) {
	conversationID := strings.TrimSpace(c.Param("id"))
	conversation, err := h.Store.Get(conversationID)
	if err != nil {
		h.respondChatError(c, err, "load conversation", "conversation_id", conversationID, "user_id", p.ID)
		return nil, false
	}
	if !conversation.HasParticipant(p.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a chat participant"})
		return nil, false
	}
	return conversation, true
}

// notify publishes the event best-effort; a broker failure never fails the send.
func (h ChatHandler) notify(c *gin.Context, message messaging.Message) {
	if h.Notifier == nil {
		return
	}
	conversation, err := h.Store.Get(message.ConversationID)
	if err != nil {
		return
	}
	event := policies.MessagePostedEvent{
		ConversationID: message.ConversationID,
		MessageID:      message.ID,
		SenderID:       message.SenderID,
		Subject:        conversation.Subject,
		SentAt:         message.SentAt,
	}
	for _, participant := range conversation.Participants {
		if participant != message.SenderID {
			event.RecipientID = participant
		}
	}
	if err := h.Notifier.NotifyMessagePosted(c.Request.Context(), event); err != nil && h.Logger != nil {
		h.Logger.Warn("message notification failed", "conversation_id", message.ConversationID, "error", err)
	}
}

func (h ChatHandler) respondChatError(c *gin.Context, err error, action string, attrs ...any) {
	if h.Logger != nil {
		h.Logger.Debug("chat call failed", append([]any{"action", action, "error", err}, attrs...)...)
	}
	switch {
	case errors.Is(err, messaging.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
	case errors.Is(err, messaging.ErrNotAParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": "not a chat participant"})
	case errors.Is(err, messaging.ErrInvalidParticipants),
		errors.Is(err, messaging.ErrSubjectRequired),
		errors.Is(err, messaging.ErrTextRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ ChatHTTP = (*ChatHandler)(nil)

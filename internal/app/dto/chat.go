package dto

import (
	"time"

	"roomfinder/internal/domain/messaging"
)

// Conversation describes chat metadata for inbox views.
type Conversation struct {
	ID              string    `json:"id"`
	Participants    []string  `json:"participants"`
	Subject         string    `json:"subject"`
	CreatedAt       time.Time `json:"created_at"`
	LastMessageText string    `json:"last_message_text,omitempty"`
	LastSenderID    string    `json:"last_sender_id,omitempty"`
	LastMessageAt   int64     `json:"last_message_at,omitempty"`
	UnreadCount     int       `json:"unread_count"`
}

// ConversationList is the inbox collection plus the navbar badge total.
type ConversationList struct {
	Items       []Conversation `json:"items"`
	TotalUnread int            `json:"total_unread"`
}

// ChatMessage contains a single message payload.
type ChatMessage struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Text           string `json:"text"`
	SentAt         int64  `json:"sent_at"`
}

// ChatMessageList carries a full thread.
type ChatMessageList struct {
	Items []ChatMessage `json:"items"`
}

// MapConversation flattens a domain conversation and its unread count.
func MapConversation(conversation *messaging.Conversation, unread int) Conversation {
	result := Conversation{
		ID:           conversation.ID,
		Participants: append([]string(nil), conversation.Participants...),
		Subject:      conversation.Subject,
		CreatedAt:    conversation.CreatedAt,
		UnreadCount:  unread,
	}
	if last, ok := conversation.LastMessage(); ok {
		result.LastMessageText = last.Text
		result.LastSenderID = last.SenderID
		result.LastMessageAt = last.SentAt
	}
	return result
}

// MapChatMessage copies a domain message for transport.
func MapChatMessage(message messaging.Message) ChatMessage {
	return ChatMessage{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Text:           message.Text,
		SentAt:         message.SentAt,
	}
}

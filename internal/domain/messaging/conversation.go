package messaging

import (
	"errors"
	"time"
)

var (
	ErrInvalidParticipants  = errors.New("messaging: participants must be two distinct non-empty user ids")
	ErrSubjectRequired      = errors.New("messaging: subject is required")
	ErrConversationNotFound = errors.New("messaging: conversation not found")
	ErrNotAParticipant      = errors.New("messaging: sender is not a participant")
	ErrTextRequired         = errors.New("messaging: text is required")
)

// Message is a single immutable chat message. SentAt is a unix-millisecond
// stamp, strictly increasing within a store.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Text           string `json:"text"`
	SentAt         int64  `json:"sent_at"`
}

// Conversation is an append-only thread between exactly two users about one
// subject (typically a property name). Participants keep the order they were
// given at creation; identity is the unordered pair plus the subject.
type Conversation struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	Subject      string    `json:"subject"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// LastMessage returns the newest message, or false for an empty thread.
func (c *Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

func cloneConversation(c *Conversation) *Conversation {
	if c == nil {
		return nil
	}
	copied := *c
	copied.Participants = append([]string(nil), c.Participants...)
	copied.Messages = append([]Message(nil), c.Messages...)
	return &copied
}

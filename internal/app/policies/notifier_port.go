package policies

import "context"

// MessagePostedEvent describes a message that was just appended to a thread.
type MessagePostedEvent struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	SenderID       string `json:"sender_id"`
	RecipientID    string `json:"recipient_id"`
	Subject        string `json:"subject"`
	SentAt         int64  `json:"sent_at"`
}

// MessageNotifier fans chat activity out to whatever channel is configured.
// Implementations must never block message delivery: notification failures are
// logged by callers, not surfaced to the sender.
type MessageNotifier interface {
	NotifyMessagePosted(ctx context.Context, event MessagePostedEvent) error
}

// NoopNotifier is used when no broker is configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyMessagePosted(ctx context.Context, event MessagePostedEvent) error {
	return nil
}

var _ MessageNotifier = NoopNotifier{}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"roomfinder/internal/app/policies"
)

// Notifier publishes message-posted events so downstream consumers (badge
// counters, push relays) can react without polling the store.
type Notifier struct {
	Producer *Producer
	Topic    string
}

func (n Notifier) NotifyMessagePosted(ctx context.Context, event policies.MessagePostedEvent) error {
	if n.Producer == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: encode message event: %w", err)
	}
	return n.Producer.Publish(ctx, n.Topic, event.ConversationID, payload, map[string]string{
		"event": "chat.message_posted",
	})
}

var _ policies.MessageNotifier = Notifier{}

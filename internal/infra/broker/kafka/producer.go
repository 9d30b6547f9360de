package kafka

import (
	"context"

	"github.com/IBM/sarama"
)

// Producer is a synchronous publisher for chat events. Messages are keyed by
// conversation id so every thread's events land on one partition, in order.
type Producer struct {
	sync sarama.SyncProducer
}

func NewProducer(brokers []string, cfg *sarama.Config) (*Producer, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
		cfg.ClientID = "roomfinder"
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	// Idempotent producers require a single in-flight request.
	cfg.Net.MaxOpenRequests = 1
	sync, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{sync: sync}, nil
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	records := make([]sarama.RecordHeader, 0, len(headers))
	for name, value := range headers {
		records = append(records, sarama.RecordHeader{Key: []byte(name), Value: []byte(value)})
	}
	_, _, err := p.sync.SendMessage(&sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(payload),
		Headers: records,
	})
	return err
}

func (p *Producer) Close() error {
	if p.sync == nil {
		return nil
	}
	return p.sync.Close()
}

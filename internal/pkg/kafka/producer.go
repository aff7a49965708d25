package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"messaging-backend/internal/model"
)

// Producer publishes message-appended events for downstream consumers
// (notification fan-out, archival). The log itself is the source of
// truth; events are best-effort.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer connects a synchronous, idempotent producer to the brokers.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return &Producer{
		producer: producer,
		topic:    topic,
	}, nil
}

// messageEvent is the wire form of a message-appended event.
type messageEvent struct {
	ID          int64     `json:"id"`
	ChannelName string    `json:"channel_name"`
	Username    string    `json:"username"`
	Text        string    `json:"text"`
	SentAt      time.Time `json:"sent_at"`
}

// MessageSent publishes one event keyed by channel name, so all events
// for a channel land on the same partition in order.
func (p *Producer) MessageSent(ctx context.Context, message *model.Message) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	value, err := json.Marshal(messageEvent{
		ID:          message.ID,
		ChannelName: message.ChannelName,
		Username:    message.Username,
		Text:        message.Text,
		SentAt:      message.SentAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode message event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(message.ChannelName),
		Value: sarama.ByteEncoder(value),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to send message event: %w", err)
	}
	return nil
}

// Close shuts the underlying producer down.
func (p *Producer) Close() error {
	return p.producer.Close()
}

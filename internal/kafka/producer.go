package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"ms-booking/internal/logger"
)

// Event is the envelope streamed on every committed record mutation.
type Event struct {
	Action    string      `json:"action"` // created, updated, deleted
	Entity    string      `json:"entity"` // venue, artist, show
	ID        int64       `json:"id"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type Producer struct {
	writers  map[string]*kafka.Writer
	enabled  bool
	mockMode bool
	logger   *logger.Logger
}

// NewProducer builds one writer per topic. With mockMode set the
// producer only logs; with enabled unset it is a no-op.
func NewProducer(brokers []string, topics []string, enabled, mockMode bool, log *logger.Logger) *Producer {
	writers := make(map[string]*kafka.Writer, len(topics))
	if enabled && !mockMode {
		for _, topic := range topics {
			writers[topic] = kafka.NewWriter(kafka.WriterConfig{
				Brokers: brokers,
				Topic:   topic,
			})
		}
	}
	return &Producer{writers: writers, enabled: enabled, mockMode: mockMode, logger: log}
}

// Publish streams an event envelope to the given topic, keyed by the
// record id so per-record ordering is preserved.
func (p *Producer) Publish(topic string, event Event) error {
	if !p.enabled {
		return nil
	}

	event.Timestamp = time.Now().UTC()
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if p.mockMode {
		p.logger.LogKafka("MOCK", topic, string(msgBytes))
		return nil
	}

	writer, ok := p.writers[topic]
	if !ok {
		return fmt.Errorf("no writer configured for topic %s", topic)
	}

	p.logger.LogKafka("PUBLISH", topic, fmt.Sprintf("%s %s id=%d", event.Action, event.Entity, event.ID))

	return writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(strconv.FormatInt(event.ID, 10)),
			Value: msgBytes,
		},
	)
}

// Close flushes and closes all topic writers.
func (p *Producer) Close() {
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil {
			p.logger.Warn("KAFKA", fmt.Sprintf("closing writer for %s: %v", topic, err))
		}
	}
}

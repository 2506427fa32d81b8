package realtime

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/kashala/atm-finder-go/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter is the subset of kafka.Writer the publisher needs.
// This allows for easy mocking in unit tests.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher pushes availability change events onto a Kafka topic, keyed by
// ATM id so per-ATM ordering survives partitioning.
type Publisher struct {
	writer KafkaWriter
}

// NewPublisher creates a publisher for the given broker and topic.
func NewPublisher(broker, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return &Publisher{writer: writer}
}

// Notify implements service.Notifier. Publish failures are logged, not
// surfaced: the local write already succeeded and the SSE hub still fans
// the event out.
func (p *Publisher) Notify(ev models.ChangeEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to marshal change event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.ATMID),
		Value: payload,
	})
	if err != nil {
		log.Printf("Failed to publish change event for %s: %v", ev.ATMID, err)
	}
}

// Close shuts the underlying writer down.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Fanout delivers events to multiple notifiers.
type Fanout []interface {
	Notify(ev models.ChangeEvent)
}

// Notify forwards the event to every member.
func (f Fanout) Notify(ev models.ChangeEvent) {
	for _, n := range f {
		n.Notify(ev)
	}
}

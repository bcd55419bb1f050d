package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RandalBristow/pizza-palace-sub000/internal/cart"
	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
	"github.com/google/uuid"
)

// Producer is satisfied by broker.KafkaProducer.
type Producer interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type LineFinalizedEvent struct {
	EventID   string               `json:"event_id"`
	EventType string               `json:"event_type"`
	Payload   LineFinalizedPayload `json:"payload"`
	Timestamp time.Time            `json:"timestamp"`
}

type LineFinalizedPayload struct {
	Line           model.Line `json:"line"`
	ReplacesLineID string     `json:"replaces_line_id,omitempty"`
}

type KafkaPublisher struct {
	producer Producer
	now      func() time.Time
}

func NewKafkaPublisher(producer Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, now: time.Now}
}

var _ cart.Publisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) PublishLine(ctx context.Context, line model.Line, replacesLineID string) error {
	event := LineFinalizedEvent{
		EventID:   uuid.New().String(),
		EventType: cart.EventLineFinalized,
		Payload: LineFinalizedPayload{
			Line:           line,
			ReplacesLineID: replacesLineID,
		},
		Timestamp: p.now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal line event: %w", err)
	}

	if err := p.producer.Publish(ctx, line.ID, data); err != nil {
		return fmt.Errorf("publish line %s: %w", line.ID, err)
	}
	return nil
}

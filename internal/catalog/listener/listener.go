package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RandalBristow/pizza-palace-sub000/internal/catalog"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/broker"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/logger"
	"go.uber.org/zap"
)

const EventCatalogChanged = "CatalogChanged"

type CatalogListener struct {
	consumer *broker.KafkaConsumer
	uc       catalog.UseCase
	logger   logger.ZapLogger
}

func NewCatalogListener(consumer *broker.KafkaConsumer, uc catalog.UseCase, logger logger.ZapLogger) *CatalogListener {
	return &CatalogListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *CatalogListener) Start(ctx context.Context) {
	l.logger.Info("Starting Catalog Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Catalog Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type CatalogChangedEvent struct {
	EventID   string                `json:"event_id"`
	EventType string                `json:"event_type"`
	Payload   CatalogChangedPayload `json:"payload"`
	Timestamp time.Time             `json:"timestamp"`
}

// CatalogChangedPayload names the menu item whose catalog data changed.
// An empty MenuItemID means a shared table (sizes, toppings, templates)
// changed and every snapshot is stale.
type CatalogChangedPayload struct {
	MenuItemID string `json:"menu_item_id"`
}

func (l *CatalogListener) processMessage(ctx context.Context, value []byte) {
	var event CatalogChangedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventCatalogChanged {
		return
	}

	l.logger.Info("Processing CatalogChanged event",
		zap.String("event_id", event.EventID),
		zap.String("menu_item_id", event.Payload.MenuItemID),
	)

	if err := l.uc.InvalidateSnapshots(ctx, event.Payload.MenuItemID); err != nil {
		l.logger.Error("Failed to invalidate catalog snapshots",
			zap.String("menu_item_id", event.Payload.MenuItemID),
			zap.Error(err),
		)
	}
}

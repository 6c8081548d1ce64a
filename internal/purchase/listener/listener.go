package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/internal/purchase"
	"github.com/fekuna/omnipos-inventory/internal/purchase/dto"
	"github.com/fekuna/omnipos-inventory/internal/purchase/event"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// PurchaseListener turns PurchaseRequested events into purchases. The event id
// becomes the purchase reference, so a redelivered event changes nothing.
type PurchaseListener struct {
	consumer MessageReader
	uc       purchase.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewPurchaseListener(consumer MessageReader, uc purchase.UseCase, logger logger.ZapLogger) *PurchaseListener {
	return &PurchaseListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

func (l *PurchaseListener) Start(ctx context.Context) {
	l.logger.Info("Starting purchase Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping purchase Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *PurchaseListener) processMessage(ctx context.Context, value []byte) {
	var evt event.PurchaseRequested
	if err := json.Unmarshal(value, &evt); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if evt.EventType != event.TypePurchaseRequested {
		return
	}
	if evt.EventID == "" {
		l.logger.Warn("Dropping purchase event without id")
		return
	}

	l.logger.Info("Processing PurchaseRequested event", zap.String("event_id", evt.EventID))

	res, err := l.uc.Purchase(ctx, &dto.PurchaseInput{
		ProductID:   evt.Payload.ProductID,
		ProductName: evt.Payload.ProductName,
		Quantity:    evt.Payload.Quantity,
		Reference:   evt.EventID,
	})
	if err != nil {
		fields := []zap.Field{
			zap.String("event_id", evt.EventID),
			zap.Int64("product_id", evt.Payload.ProductID),
			zap.Error(err),
		}
		if errors.Is(err, apperror.ErrStorage) {
			l.logger.Error("Failed to record purchase", fields...)
		} else {
			l.logger.Warn("Purchase event rejected", fields...)
		}
		return
	}
	if res.Duplicate {
		l.logger.Debug("Purchase event already applied", zap.String("event_id", evt.EventID))
	}
}

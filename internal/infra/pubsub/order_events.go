package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"nubereats/internal/domain/model"
)

// 注文イベントをJSONにしてBrokerに流す。usecaseのPublisher/Subscriberを兼ねる
type OrderEvents struct {
	broker Broker
	mirror *KafkaMirror // nilなら送らない
	logger *slog.Logger
}

func NewOrderEvents(broker Broker, mirror *KafkaMirror, logger *slog.Logger) *OrderEvents {
	return &OrderEvents{broker: broker, mirror: mirror, logger: logger}
}

func (e *OrderEvents) Publish(ctx context.Context, ev model.OrderEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	pubErr := e.broker.Publish(ctx, string(ev.Type), payload)

	var mirrorErr error
	if e.mirror != nil {
		if err := e.mirror.Write(ctx, ev.Order.ID, string(ev.Type), payload); err != nil {
			mirrorErr = fmt.Errorf("kafka mirror: %w", err)
		}
	}
	return errors.Join(pubErr, mirrorErr)
}

func (e *OrderEvents) Subscribe(ctx context.Context, typ model.OrderEventType) (<-chan model.OrderEvent, error) {
	raw, err := e.broker.Subscribe(ctx, string(typ))
	if err != nil {
		return nil, err
	}

	out := make(chan model.OrderEvent)
	go func() {
		defer close(out)
		for payload := range raw {
			var ev model.OrderEvent
			if err := json.Unmarshal(payload, &ev); err != nil {
				e.logger.WarnContext(ctx, "drop malformed order event",
					slog.String("type", string(typ)),
					slog.Any("error", err),
				)
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				//rawが閉じるまで読み捨てる
				for range raw {
				}
				return
			}
		}
	}()
	return out, nil
}

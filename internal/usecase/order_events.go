package usecase

import (
	"context"
	"log/slog"
	"time"

	"nubereats/internal/domain/model"
)

// 通知の送信（失敗してもusecaseは失敗にしない）
type OrderEventPublisher interface {
	Publish(ctx context.Context, ev model.OrderEvent) error
}

// 通知の購読。ctxが終わるとchannelは閉じる
type OrderEventSubscriber interface {
	Subscribe(ctx context.Context, typ model.OrderEventType) (<-chan model.OrderEvent, error)
}

const publishTimeout = 3 * time.Second

// commit後に呼ぶ。エラーはログだけ
func publishOrderEvent(ctx context.Context, pub OrderEventPublisher, logger *slog.Logger, ev model.OrderEvent) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := pub.Publish(ctx, ev); err != nil {
		logger.WarnContext(ctx, "order event publish failed",
			slog.String("type", string(ev.Type)),
			slog.Int64("order_id", ev.Order.ID),
			slog.Any("error", err),
		)
	}
}

// 条件に合うイベントの注文だけ流す
func forwardOrders(ctx context.Context, in <-chan model.OrderEvent, keep func(model.OrderEvent) bool) <-chan model.Order {
	out := make(chan model.Order)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-in:
				if !ok {
					return
				}
				if !keep(ev) {
					continue
				}
				select {
				case out <- ev.Order:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

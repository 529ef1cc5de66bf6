package graph

import (
	"context"

	"nubereats/internal/domain/model"
)

func (r *Resolver) PendingOrders(ctx context.Context) (<-chan *orderResolver, error) {
	owner, err := authorize(ctx, "pendingOrders")
	if err != nil {
		return nil, err
	}
	in, err := r.OrderSvc.PendingOrders(ctx, owner)
	if err != nil {
		return nil, r.subscriptionError(ctx, "pendingOrders", err)
	}
	return r.orderStream(ctx, in), nil
}

func (r *Resolver) CookedOrders(ctx context.Context) (<-chan *orderResolver, error) {
	if _, err := authorize(ctx, "cookedOrders"); err != nil {
		return nil, err
	}
	in, err := r.OrderSvc.CookedOrders(ctx)
	if err != nil {
		return nil, r.subscriptionError(ctx, "cookedOrders", err)
	}
	return r.orderStream(ctx, in), nil
}

func (r *Resolver) OrderUpdates(ctx context.Context, args struct{ Input struct{ ID int32 } }) (<-chan *orderResolver, error) {
	user, err := authorize(ctx, "orderUpdates")
	if err != nil {
		return nil, err
	}
	in, err := r.OrderSvc.OrderUpdates(ctx, user, int64(args.Input.ID))
	if err != nil {
		return nil, r.subscriptionError(ctx, "orderUpdates", err)
	}
	return r.orderStream(ctx, in), nil
}

// 購読はenvelopeを返せないのでメッセージだけのエラーにする
func (r *Resolver) subscriptionError(ctx context.Context, op string, err error) error {
	return &messageError{msg: *r.envelopeOf(ctx, op, err).Error()}
}

type messageError struct{ msg string }

func (e *messageError) Error() string { return e.msg }

func (r *Resolver) orderStream(ctx context.Context, in <-chan model.Order) <-chan *orderResolver {
	out := make(chan *orderResolver)
	go func() {
		defer close(out)
		for o := range in {
			select {
			case out <- &orderResolver{root: r, o: o}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

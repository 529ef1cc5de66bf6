package graph

import (
	"context"

	"nubereats/internal/domain/model"
	"nubereats/internal/usecase"
)

type orderItemOptionInput struct {
	Name   string
	Choice *string
}

type createOrderItemInput struct {
	DishID  int32
	Options *[]orderItemOptionInput
}

type createOrderArgs struct {
	Input struct {
		RestaurantID int32
		Items        []createOrderItemInput
	}
}

func (r *Resolver) CreateOrder(ctx context.Context, args createOrderArgs) (*envelope, error) {
	customer, err := authorize(ctx, "createOrder")
	if err != nil {
		return nil, err
	}

	in := usecase.CreateOrderInput{
		RestaurantID: int64(args.Input.RestaurantID),
		Items:        make([]usecase.CreateOrderItemInput, len(args.Input.Items)),
	}
	for i, item := range args.Input.Items {
		in.Items[i].DishID = int64(item.DishID)
		if item.Options == nil {
			continue
		}
		for _, o := range *item.Options {
			in.Items[i].Options = append(in.Items[i].Options, model.OrderItemOption{Name: o.Name, Choice: o.Choice})
		}
	}

	out := r.envelopeOf(ctx, "createOrder", r.OrderSvc.CreateOrder(ctx, customer, in))
	return &out, nil
}

type getOrdersOutput struct {
	envelope
	root   *Resolver
	orders []model.Order
}

func (o *getOrdersOutput) Orders() *[]*orderResolver {
	if o.orders == nil {
		return nil
	}
	out := make([]*orderResolver, len(o.orders))
	for i := range o.orders {
		out[i] = &orderResolver{root: o.root, o: o.orders[i]}
	}
	return &out
}

func (r *Resolver) GetOrders(ctx context.Context, args struct{ Input struct{ Status *string } }) (*getOrdersOutput, error) {
	user, err := authorize(ctx, "getOrders")
	if err != nil {
		return nil, err
	}

	var status *model.OrderStatus
	if args.Input.Status != nil {
		s := model.OrderStatus(*args.Input.Status)
		status = &s
	}
	orders, err := r.OrderSvc.GetOrders(ctx, user, status)
	if err != nil {
		return &getOrdersOutput{envelope: r.envelopeOf(ctx, "getOrders", err)}, nil
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return &getOrdersOutput{envelope: envelope{ok: true}, root: r, orders: orders}, nil
}

type getOrderOutput struct {
	envelope
	root  *Resolver
	order *model.Order
}

func (o *getOrderOutput) Order() *orderResolver {
	if o.order == nil {
		return nil
	}
	return &orderResolver{root: o.root, o: *o.order}
}

func (r *Resolver) GetOrder(ctx context.Context, args struct{ Input struct{ ID int32 } }) (*getOrderOutput, error) {
	user, err := authorize(ctx, "getOrder")
	if err != nil {
		return nil, err
	}
	order, err := r.OrderSvc.GetOrder(ctx, user, int64(args.Input.ID))
	if err != nil {
		return &getOrderOutput{envelope: r.envelopeOf(ctx, "getOrder", err)}, nil
	}
	return &getOrderOutput{envelope: envelope{ok: true}, root: r, order: &order}, nil
}

type editOrderArgs struct {
	Input struct {
		ID     int32
		Status string
	}
}

func (r *Resolver) EditOrder(ctx context.Context, args editOrderArgs) (*envelope, error) {
	user, err := authorize(ctx, "editOrder")
	if err != nil {
		return nil, err
	}
	err = r.OrderSvc.EditOrder(ctx, user, int64(args.Input.ID), model.OrderStatus(args.Input.Status))
	out := r.envelopeOf(ctx, "editOrder", err)
	return &out, nil
}

func (r *Resolver) TakeOrder(ctx context.Context, args struct{ Input struct{ ID int32 } }) (*envelope, error) {
	driver, err := authorize(ctx, "takeOrder")
	if err != nil {
		return nil, err
	}
	out := r.envelopeOf(ctx, "takeOrder", r.OrderSvc.TakeOrder(ctx, driver, int64(args.Input.ID)))
	return &out, nil
}

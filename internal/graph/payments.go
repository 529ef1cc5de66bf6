package graph

import (
	"context"

	"nubereats/internal/domain/model"
)

type createPaymentArgs struct {
	Input struct {
		TransactionID string
		RestaurantID  int32
	}
}

func (r *Resolver) CreatePayment(ctx context.Context, args createPaymentArgs) (*envelope, error) {
	owner, err := authorize(ctx, "createPayment")
	if err != nil {
		return nil, err
	}
	err = r.PaymentSvc.CreatePayment(ctx, owner, args.Input.TransactionID, int64(args.Input.RestaurantID))
	out := r.envelopeOf(ctx, "createPayment", err)
	return &out, nil
}

type getPaymentsOutput struct {
	envelope
	root     *Resolver
	payments []model.Payment
}

func (o *getPaymentsOutput) Payments() *[]*paymentResolver {
	if o.payments == nil {
		return nil
	}
	out := make([]*paymentResolver, len(o.payments))
	for i := range o.payments {
		out[i] = &paymentResolver{root: o.root, p: o.payments[i]}
	}
	return &out
}

func (r *Resolver) GetPayments(ctx context.Context) (*getPaymentsOutput, error) {
	owner, err := authorize(ctx, "getPayments")
	if err != nil {
		return nil, err
	}
	payments, err := r.PaymentSvc.GetPayments(ctx, owner)
	if err != nil {
		return &getPaymentsOutput{envelope: r.envelopeOf(ctx, "getPayments", err)}, nil
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return &getPaymentsOutput{envelope: envelope{ok: true}, root: r, payments: payments}, nil
}

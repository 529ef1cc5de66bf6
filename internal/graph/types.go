package graph

import (
	"context"

	"nubereats/internal/domain/model"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/shopspring/decimal"
)

type userResolver struct{ u model.User }

func (r *userResolver) ID() int32               { return int32(r.u.ID) }
func (r *userResolver) Email() string           { return r.u.Email }
func (r *userResolver) Role() string            { return string(r.u.Role) }
func (r *userResolver) Verified() bool          { return r.u.Verified }
func (r *userResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.u.CreatedAt} }
func (r *userResolver) UpdatedAt() graphql.Time { return graphql.Time{Time: r.u.UpdatedAt} }

func newUser(u *model.User) *userResolver {
	if u == nil {
		return nil
	}
	return &userResolver{u: *u}
}

type categoryResolver struct {
	root *Resolver
	c    model.Category
}

func (r *categoryResolver) ID() int32               { return int32(r.c.ID) }
func (r *categoryResolver) Name() string            { return r.c.Name }
func (r *categoryResolver) CoverImg() *string       { return r.c.CoverImg }
func (r *categoryResolver) Slug() string            { return r.c.Slug }
func (r *categoryResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.c.CreatedAt} }
func (r *categoryResolver) UpdatedAt() graphql.Time { return graphql.Time{Time: r.c.UpdatedAt} }

// 所属レストラン数（フィールドが要求されたときだけ数える）
func (r *categoryResolver) RestaurantCount(ctx context.Context) (int32, error) {
	n, err := r.root.CategorySvc.RestaurantCount(ctx, r.c.ID)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

type restaurantResolver struct {
	root *Resolver
	r    model.Restaurant
}

func (r *restaurantResolver) ID() int32               { return int32(r.r.ID) }
func (r *restaurantResolver) Name() string            { return r.r.Name }
func (r *restaurantResolver) CoverImg() string        { return r.r.CoverImg }
func (r *restaurantResolver) Address() string         { return r.r.Address }
func (r *restaurantResolver) OwnerID() int32          { return int32(r.r.OwnerID) }
func (r *restaurantResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.r.CreatedAt} }
func (r *restaurantResolver) UpdatedAt() graphql.Time { return graphql.Time{Time: r.r.UpdatedAt} }

func (r *restaurantResolver) Category() *categoryResolver {
	if r.r.Category == nil {
		return nil
	}
	return &categoryResolver{root: r.root, c: *r.r.Category}
}

// restaurant(id)のときだけ読み込まれる
func (r *restaurantResolver) Menu() *[]*dishResolver {
	if r.r.Menu == nil {
		return nil
	}
	out := make([]*dishResolver, len(r.r.Menu))
	for i := range r.r.Menu {
		out[i] = &dishResolver{d: r.r.Menu[i]}
	}
	return &out
}

func (r *Resolver) restaurantList(items []model.Restaurant) *[]*restaurantResolver {
	out := make([]*restaurantResolver, len(items))
	for i := range items {
		out[i] = &restaurantResolver{root: r, r: items[i]}
	}
	return &out
}

type dishResolver struct{ d model.Dish }

func (r *dishResolver) ID() int32               { return int32(r.d.ID) }
func (r *dishResolver) Name() string            { return r.d.Name }
func (r *dishResolver) Price() float64          { return r.d.Price.InexactFloat64() }
func (r *dishResolver) Photo() *string          { return r.d.Photo }
func (r *dishResolver) Description() string     { return r.d.Description }
func (r *dishResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.d.CreatedAt} }
func (r *dishResolver) UpdatedAt() graphql.Time { return graphql.Time{Time: r.d.UpdatedAt} }

func (r *dishResolver) Options() *[]*dishOptionResolver {
	if r.d.Options == nil {
		return nil
	}
	out := make([]*dishOptionResolver, len(r.d.Options))
	for i := range r.d.Options {
		out[i] = &dishOptionResolver{o: r.d.Options[i]}
	}
	return &out
}

type dishOptionResolver struct{ o model.DishOption }

func (r *dishOptionResolver) Name() string    { return r.o.Name }
func (r *dishOptionResolver) Extra() *float64 { return toFloat(r.o.Extra) }

func (r *dishOptionResolver) Choices() *[]*dishChoiceResolver {
	if r.o.Choices == nil {
		return nil
	}
	out := make([]*dishChoiceResolver, len(r.o.Choices))
	for i := range r.o.Choices {
		out[i] = &dishChoiceResolver{c: r.o.Choices[i]}
	}
	return &out
}

type dishChoiceResolver struct{ c model.DishOptionChoice }

func (r *dishChoiceResolver) Name() string    { return r.c.Name }
func (r *dishChoiceResolver) Extra() *float64 { return toFloat(r.c.Extra) }

type orderItemOptionResolver struct{ o model.OrderItemOption }

func (r *orderItemOptionResolver) Name() string    { return r.o.Name }
func (r *orderItemOptionResolver) Choice() *string { return r.o.Choice }

type orderItemResolver struct{ i model.OrderItem }

func (r *orderItemResolver) ID() int32 { return int32(r.i.ID) }

func (r *orderItemResolver) Dish() *dishResolver {
	if r.i.Dish == nil {
		return nil
	}
	return &dishResolver{d: *r.i.Dish}
}

func (r *orderItemResolver) Options() *[]*orderItemOptionResolver {
	if r.i.Options == nil {
		return nil
	}
	out := make([]*orderItemOptionResolver, len(r.i.Options))
	for i := range r.i.Options {
		out[i] = &orderItemOptionResolver{o: r.i.Options[i]}
	}
	return &out
}

type orderResolver struct {
	root *Resolver
	o    model.Order
}

func (r *orderResolver) ID() int32               { return int32(r.o.ID) }
func (r *orderResolver) Customer() *userResolver { return newUser(r.o.Customer) }
func (r *orderResolver) Driver() *userResolver   { return newUser(r.o.Driver) }
func (r *orderResolver) Total() *float64         { return toFloat(r.o.Total) }
func (r *orderResolver) Status() string          { return string(r.o.Status) }
func (r *orderResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.o.CreatedAt} }
func (r *orderResolver) UpdatedAt() graphql.Time { return graphql.Time{Time: r.o.UpdatedAt} }

func (r *orderResolver) Restaurant() *restaurantResolver {
	if r.o.Restaurant == nil {
		return nil
	}
	return &restaurantResolver{root: r.root, r: *r.o.Restaurant}
}

func (r *orderResolver) Items() []*orderItemResolver {
	out := make([]*orderItemResolver, len(r.o.Items))
	for i := range r.o.Items {
		out[i] = &orderItemResolver{i: r.o.Items[i]}
	}
	return out
}

type paymentResolver struct {
	root *Resolver
	p    model.Payment
}

func (r *paymentResolver) ID() int32               { return int32(r.p.ID) }
func (r *paymentResolver) TransactionID() string   { return r.p.TransactionID }
func (r *paymentResolver) RestaurantID() int32     { return int32(r.p.RestaurantID) }
func (r *paymentResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.p.CreatedAt} }

func (r *paymentResolver) Restaurant() *restaurantResolver {
	if r.p.Restaurant == nil {
		return nil
	}
	return &restaurantResolver{root: r.root, r: *r.p.Restaurant}
}

func toFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

func toDecimal(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

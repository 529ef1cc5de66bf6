package graph

import (
	"context"

	"nubereats/internal/domain/model"
	"nubereats/internal/usecase"

	"github.com/shopspring/decimal"
)

// ---- queries ----

type restaurantsOutput struct {
	pageOutput
	root  *Resolver
	items []model.Restaurant
}

func (o *restaurantsOutput) Results() *[]*restaurantResolver {
	if o.items == nil {
		return nil
	}
	return o.root.restaurantList(o.items)
}

// searchRestaurantは同じ中身をrestaurantsという名前で返す
func (o *restaurantsOutput) Restaurants() *[]*restaurantResolver { return o.Results() }

// 省略時は1ページ目・25件
func pageInput(page, offset *int32) usecase.PageInput {
	p := usecase.PageInput{Page: 1, Offset: usecase.DefaultPageSize}
	if page != nil {
		p.Page = int(*page)
	}
	if offset != nil {
		p.Offset = int(*offset)
	}
	return p
}

func (r *Resolver) Restaurants(ctx context.Context, args struct{ Input struct{ Page, Offset *int32 } }) (*restaurantsOutput, error) {
	items, info, err := r.RestaurantSvc.Restaurants(ctx, pageInput(args.Input.Page, args.Input.Offset))
	return r.restaurantsPage(ctx, "restaurants", items, info, err), nil
}

type searchRestaurantArgs struct {
	Input struct {
		Page   *int32
		Offset *int32
		Query  string
	}
}

func (r *Resolver) SearchRestaurant(ctx context.Context, args searchRestaurantArgs) (*restaurantsOutput, error) {
	items, info, err := r.RestaurantSvc.SearchRestaurant(ctx, args.Input.Query, pageInput(args.Input.Page, args.Input.Offset))
	return r.restaurantsPage(ctx, "searchRestaurant", items, info, err), nil
}

func (r *Resolver) restaurantsPage(ctx context.Context, op string, items []model.Restaurant, info usecase.PageInfo, err error) *restaurantsOutput {
	if err != nil {
		return &restaurantsOutput{pageOutput: pageOutput{envelope: r.envelopeOf(ctx, op, err)}, root: r}
	}
	if items == nil {
		items = []model.Restaurant{}
	}
	return &restaurantsOutput{
		pageOutput: pageOutput{envelope: envelope{ok: true}, info: &info},
		root:       r,
		items:      items,
	}
}

type restaurantOutput struct {
	envelope
	root       *Resolver
	restaurant *model.Restaurant
}

func (o *restaurantOutput) Restaurant() *restaurantResolver {
	if o.restaurant == nil {
		return nil
	}
	return &restaurantResolver{root: o.root, r: *o.restaurant}
}

func (r *Resolver) Restaurant(ctx context.Context, args struct{ Input struct{ RestaurantID int32 } }) (*restaurantOutput, error) {
	found, err := r.RestaurantSvc.Restaurant(ctx, int64(args.Input.RestaurantID))
	if err != nil {
		return &restaurantOutput{envelope: r.envelopeOf(ctx, "restaurant", err)}, nil
	}
	if found.Menu == nil {
		found.Menu = []model.Dish{}
	}
	return &restaurantOutput{envelope: envelope{ok: true}, root: r, restaurant: &found}, nil
}

type allCategoriesOutput struct {
	envelope
	root  *Resolver
	items []model.Category
}

func (o *allCategoriesOutput) Categories() *[]*categoryResolver {
	if o.items == nil {
		return nil
	}
	out := make([]*categoryResolver, len(o.items))
	for i := range o.items {
		out[i] = &categoryResolver{root: o.root, c: o.items[i]}
	}
	return &out
}

func (r *Resolver) AllCategories(ctx context.Context) (*allCategoriesOutput, error) {
	items, err := r.CategorySvc.AllCategories(ctx)
	if err != nil {
		return &allCategoriesOutput{envelope: r.envelopeOf(ctx, "allCategories", err)}, nil
	}
	if items == nil {
		items = []model.Category{}
	}
	return &allCategoriesOutput{envelope: envelope{ok: true}, root: r, items: items}, nil
}

type categoryOutput struct {
	restaurantsOutput
	category *model.Category
}

func (o *categoryOutput) Category() *categoryResolver {
	if o.category == nil {
		return nil
	}
	return &categoryResolver{root: o.root, c: *o.category}
}

type categoryArgs struct {
	Input struct {
		Page   *int32
		Offset *int32
		Slug   string
	}
}

func (r *Resolver) Category(ctx context.Context, args categoryArgs) (*categoryOutput, error) {
	c, items, info, err := r.CategorySvc.Category(ctx, args.Input.Slug, pageInput(args.Input.Page, args.Input.Offset))
	out := &categoryOutput{restaurantsOutput: *r.restaurantsPage(ctx, "category", items, info, err)}
	if err == nil {
		out.category = &c
	}
	return out, nil
}

// ---- restaurant mutations ----

type createRestaurantOutput struct {
	envelope
	id *int32
}

func (o *createRestaurantOutput) RestaurantID() *int32 { return o.id }

type createRestaurantArgs struct {
	Input struct {
		Name         string
		CoverImg     string
		Address      string
		CategoryName string
	}
}

func (r *Resolver) CreateRestaurant(ctx context.Context, args createRestaurantArgs) (*createRestaurantOutput, error) {
	owner, err := authorize(ctx, "createRestaurant")
	if err != nil {
		return nil, err
	}
	id, err := r.RestaurantSvc.CreateRestaurant(ctx, owner, usecase.CreateRestaurantInput{
		Name:         args.Input.Name,
		Address:      args.Input.Address,
		CoverImg:     args.Input.CoverImg,
		CategoryName: args.Input.CategoryName,
	})
	if err != nil {
		return &createRestaurantOutput{envelope: r.envelopeOf(ctx, "createRestaurant", err)}, nil
	}
	n := int32(id)
	return &createRestaurantOutput{envelope: envelope{ok: true}, id: &n}, nil
}

type editRestaurantArgs struct {
	Input struct {
		RestaurantID int32
		Name         *string
		CoverImg     *string
		Address      *string
		CategoryName *string
	}
}

func (r *Resolver) EditRestaurant(ctx context.Context, args editRestaurantArgs) (*envelope, error) {
	owner, err := authorize(ctx, "editRestaurant")
	if err != nil {
		return nil, err
	}
	err = r.RestaurantSvc.EditRestaurant(ctx, owner, usecase.EditRestaurantInput{
		RestaurantID: int64(args.Input.RestaurantID),
		Name:         args.Input.Name,
		Address:      args.Input.Address,
		CoverImg:     args.Input.CoverImg,
		CategoryName: args.Input.CategoryName,
	})
	out := r.envelopeOf(ctx, "editRestaurant", err)
	return &out, nil
}

func (r *Resolver) DeleteRestaurant(ctx context.Context, args struct{ Input struct{ RestaurantID int32 } }) (*envelope, error) {
	owner, err := authorize(ctx, "deleteRestaurant")
	if err != nil {
		return nil, err
	}
	err = r.RestaurantSvc.DeleteRestaurant(ctx, owner, int64(args.Input.RestaurantID))
	out := r.envelopeOf(ctx, "deleteRestaurant", err)
	return &out, nil
}

// ---- dish mutations ----

type dishChoiceInput struct {
	Name  string
	Extra *float64
}

type dishOptionInput struct {
	Name    string
	Choices *[]dishChoiceInput
	Extra   *float64
}

func toDishOptions(in *[]dishOptionInput) []model.DishOption {
	if in == nil {
		return nil
	}
	out := make([]model.DishOption, len(*in))
	for i, o := range *in {
		out[i] = model.DishOption{Name: o.Name, Extra: toDecimal(o.Extra)}
		if o.Choices != nil {
			out[i].Choices = make([]model.DishOptionChoice, len(*o.Choices))
			for j, c := range *o.Choices {
				out[i].Choices[j] = model.DishOptionChoice{Name: c.Name, Extra: toDecimal(c.Extra)}
			}
		}
	}
	return out
}

type createDishArgs struct {
	Input struct {
		RestaurantID int32
		Name         string
		Price        float64
		Photo        *string
		Description  string
		Options      *[]dishOptionInput
	}
}

func (r *Resolver) CreateDish(ctx context.Context, args createDishArgs) (*envelope, error) {
	owner, err := authorize(ctx, "createDish")
	if err != nil {
		return nil, err
	}
	_, err = r.DishSvc.CreateDish(ctx, owner, usecase.CreateDishInput{
		RestaurantID: int64(args.Input.RestaurantID),
		Name:         args.Input.Name,
		Price:        decimal.NewFromFloat(args.Input.Price),
		Photo:        args.Input.Photo,
		Description:  args.Input.Description,
		Options:      toDishOptions(args.Input.Options),
	})
	out := r.envelopeOf(ctx, "createDish", err)
	return &out, nil
}

type editDishArgs struct {
	Input struct {
		DishID      int32
		Name        *string
		Price       *float64
		Photo       *string
		Description *string
		Options     *[]dishOptionInput
	}
}

func (r *Resolver) EditDish(ctx context.Context, args editDishArgs) (*envelope, error) {
	owner, err := authorize(ctx, "editDish")
	if err != nil {
		return nil, err
	}
	in := usecase.EditDishInput{
		DishID:      int64(args.Input.DishID),
		Name:        args.Input.Name,
		Price:       toDecimal(args.Input.Price),
		Photo:       args.Input.Photo,
		Description: args.Input.Description,
	}
	if args.Input.Options != nil {
		opts := toDishOptions(args.Input.Options)
		in.Options = &opts
	}
	out := r.envelopeOf(ctx, "editDish", r.DishSvc.EditDish(ctx, owner, in))
	return &out, nil
}

func (r *Resolver) DeleteDish(ctx context.Context, args struct{ Input struct{ DishID int32 } }) (*envelope, error) {
	owner, err := authorize(ctx, "deleteDish")
	if err != nil {
		return nil, err
	}
	out := r.envelopeOf(ctx, "deleteDish", r.DishSvc.DeleteDish(ctx, owner, int64(args.Input.DishID)))
	return &out, nil
}

package repository

import (
	"context"

	"nubereats/internal/domain/model"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// 一覧検索
type RestaurantListQuery struct {
	Page       int
	Limit      int
	Name       string // 部分一致（大文字小文字を区別しない）
	CategoryID *int64
}

// nilの項目は更新しない
type RestaurantPatch struct {
	Name       *string
	Address    *string
	CoverImg   *string
	CategoryID *int64
}

type RestaurantRepository interface {
	FindByID(ctx context.Context, id int64) (model.Restaurant, error)
	//メニュー込みで取得
	FindByIDWithMenu(ctx context.Context, id int64) (model.Restaurant, error)
	List(ctx context.Context, q RestaurantListQuery) ([]model.Restaurant, int64, error)

	Create(ctx context.Context, r *model.Restaurant) error
	Update(ctx context.Context, id int64, p RestaurantPatch) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindBySlug(ctx context.Context, slug string) (model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	CountRestaurants(ctx context.Context, categoryID int64) (int64, error)
}

type DishPatch struct {
	Name        *string
	Price       *decimal.Decimal
	Photo       *string
	Description *string
	Options     *datatypes.JSONSlice[model.DishOption]
}

type DishRepository interface {
	//Restaurantも一緒に読む（オーナー確認用）
	FindByID(ctx context.Context, id int64) (model.Dish, error)
	Create(ctx context.Context, d *model.Dish) error
	Update(ctx context.Context, id int64, p DishPatch) error
	Delete(ctx context.Context, id int64) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	ListByUserID(ctx context.Context, userID int64) ([]model.Payment, error)
}

package repository

import (
	"context"

	"nubereats/internal/domain/model"
)

// ロールごとの絞り込み。nilは条件なし
type OrderListFilter struct {
	CustomerID *int64
	DriverID   *int64
	OwnerID    *int64 // オーナーのレストランの注文
	Status     *model.OrderStatus
}

type OrderRepository interface {
	//Restaurantも一緒に読む（1往復でオーナー確認できるように）
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//配達員が未設定のときだけ設定する。設定できなければfalse
	AssignDriver(ctx context.Context, orderID int64, driverID int64) (bool, error)
}

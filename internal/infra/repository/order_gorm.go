package repository

import (
	"context"
	"errors"

	"nubereats/internal/domain/model"
	repo "nubereats/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// Restaurant/客/配達員はJOIN、明細とメニューはPreload
func withOrderRelations(q *gorm.DB) *gorm.DB {
	return q.Joins("Restaurant").
		Joins("Customer").
		Joins("Driver").
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("order_items.id asc") }).
		Preload("Items.Dish")
}

// 1往復でオーナー確認できるようにRestaurantも読む
func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Scopes(withOrderRelations).
		Where("orders.id = ?", orderID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{}).Scopes(withOrderRelations)

	//ロールごとの絞り込み
	if f.CustomerID != nil {
		q = q.Where("orders.customer_id = ?", *f.CustomerID)
	}
	if f.DriverID != nil {
		q = q.Where("orders.driver_id = ?", *f.DriverID)
	}
	if f.OwnerID != nil {
		q = q.Where(`"Restaurant"."owner_id" = ?`, *f.OwnerID)
	}

	//status 絞り込み
	if f.Status != nil {
		q = q.Where("orders.status = ?", *f.Status)
	}

	var items []model.Order
	if err := q.Order("orders.id desc").Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	//明細はOrderItemRepositoryで作る
	return r.db.WithContext(ctx).Omit("Items", "Restaurant", "Customer", "Driver").Create(order).Error
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// driver_idがNULLのときだけ更新（同時に引き受けても1人だけ成功）
func (r *OrderGormRepository) AssignDriver(ctx context.Context, orderID int64, driverID int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND driver_id IS NULL", orderID).
		Update("driver_id", driverID)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

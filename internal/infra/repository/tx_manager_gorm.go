package repository

import (
	"context"

	repo "nubereats/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	tx *gorm.DB
}

//repoはtxを持ったDBで作り直す
func (r *txReposGorm) Users() repo.UserRepository { return NewUserGormRepository(r.tx) }
func (r *txReposGorm) Verifications() repo.VerificationRepository {
	return NewVerificationGormRepository(r.tx)
}
func (r *txReposGorm) Restaurants() repo.RestaurantRepository { return NewRestaurantGormRepository(r.tx) }
func (r *txReposGorm) Dishes() repo.DishRepository             { return NewDishGormRepository(r.tx) }
func (r *txReposGorm) Orders() repo.OrderRepository            { return NewOrderGormRepository(r.tx) }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository    { return NewOrderItemGormRepository(r.tx) }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository      { return NewAuditLogGormRepository(r.tx) }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがerrorを返したらrollback
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txReposGorm{tx: tx})
	})
}

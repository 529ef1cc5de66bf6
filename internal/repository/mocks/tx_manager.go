package mocks

import (
	"context"

	"nubereats/internal/repository"
)

// Tx内のrepoを差し替えるだけ。nilのrepoを触るとpanicする
type TxRepos struct {
	UserRepo         repository.UserRepository
	VerificationRepo repository.VerificationRepository
	RestaurantRepo   repository.RestaurantRepository
	DishRepo         repository.DishRepository
	OrderRepo        repository.OrderRepository
	OrderItemRepo    repository.OrderItemRepository
	AuditLogRepo     repository.AuditLogRepository
}

func (r *TxRepos) Users() repository.UserRepository                 { return r.UserRepo }
func (r *TxRepos) Verifications() repository.VerificationRepository { return r.VerificationRepo }
func (r *TxRepos) Restaurants() repository.RestaurantRepository     { return r.RestaurantRepo }
func (r *TxRepos) Dishes() repository.DishRepository                { return r.DishRepo }
func (r *TxRepos) Orders() repository.OrderRepository               { return r.OrderRepo }
func (r *TxRepos) OrderItems() repository.OrderItemRepository       { return r.OrderItemRepo }
func (r *TxRepos) AuditLogs() repository.AuditLogRepository         { return r.AuditLogRepo }

// fnをそのまま実行し、結果を記録する
type TxManager struct {
	Repos      *TxRepos
	Calls      int
	Committed  int
	RolledBack int
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	m.Calls++
	if err := fn(m.Repos); err != nil {
		m.RolledBack++
		return err
	}
	m.Committed++
	return nil
}

var (
	_ repository.TxRepos            = (*TxRepos)(nil)
	_ repository.TransactionManager = (*TxManager)(nil)
)

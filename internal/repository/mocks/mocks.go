// Package mocks はrepositoryのtestify mock（usecaseのテスト用）
package mocks

import (
	"context"

	"nubereats/internal/domain/model"
	"nubereats/internal/repository"

	"github.com/stretchr/testify/mock"
)

// NewXxx(t) で作るとテスト終了時にAssertExpectationsされる
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// ---- User ----

type UserRepository struct{ mock.Mock }

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	register(t, &m.Mock)
	return m
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

type VerificationRepository struct{ mock.Mock }

func NewVerificationRepository(t testingT) *VerificationRepository {
	m := &VerificationRepository{}
	register(t, &m.Mock)
	return m
}

func (m *VerificationRepository) Create(ctx context.Context, v *model.Verification) error {
	return m.Called(ctx, v).Error(0)
}

func (m *VerificationRepository) FindByCode(ctx context.Context, code string) (*model.Verification, error) {
	args := m.Called(ctx, code)
	v, _ := args.Get(0).(*model.Verification)
	return v, args.Error(1)
}

func (m *VerificationRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

// ---- Restaurant / Category / Dish / Payment ----

type RestaurantRepository struct{ mock.Mock }

func NewRestaurantRepository(t testingT) *RestaurantRepository {
	m := &RestaurantRepository{}
	register(t, &m.Mock)
	return m
}

func (m *RestaurantRepository) FindByID(ctx context.Context, id int64) (model.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

func (m *RestaurantRepository) FindByIDWithMenu(ctx context.Context, id int64) (model.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

func (m *RestaurantRepository) List(ctx context.Context, q repository.RestaurantListQuery) ([]model.Restaurant, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Restaurant)
	total, _ := args.Get(1).(int64)
	return items, total, args.Error(2)
}

func (m *RestaurantRepository) Create(ctx context.Context, r *model.Restaurant) error {
	return m.Called(ctx, r).Error(0)
}

func (m *RestaurantRepository) Update(ctx context.Context, id int64, p repository.RestaurantPatch) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *RestaurantRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type CategoryRepository struct{ mock.Mock }

func NewCategoryRepository(t testingT) *CategoryRepository {
	m := &CategoryRepository{}
	register(t, &m.Mock)
	return m
}

func (m *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepository) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CategoryRepository) CountRestaurants(ctx context.Context, categoryID int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

type DishRepository struct{ mock.Mock }

func NewDishRepository(t testingT) *DishRepository {
	m := &DishRepository{}
	register(t, &m.Mock)
	return m
}

func (m *DishRepository) FindByID(ctx context.Context, id int64) (model.Dish, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(model.Dish)
	return d, args.Error(1)
}

func (m *DishRepository) Create(ctx context.Context, d *model.Dish) error {
	return m.Called(ctx, d).Error(0)
}

func (m *DishRepository) Update(ctx context.Context, id int64, p repository.DishPatch) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *DishRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type PaymentRepository struct{ mock.Mock }

func NewPaymentRepository(t testingT) *PaymentRepository {
	m := &PaymentRepository{}
	register(t, &m.Mock)
	return m
}

func (m *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PaymentRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Payment, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Payment)
	return items, args.Error(1)
}

// ---- Order ----

type OrderRepository struct{ mock.Mock }

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	register(t, &m.Mock)
	return m
}

func (m *OrderRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepository) List(ctx context.Context, f repository.OrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *OrderRepository) AssignDriver(ctx context.Context, orderID int64, driverID int64) (bool, error) {
	args := m.Called(ctx, orderID, driverID)
	return args.Bool(0), args.Error(1)
}

type OrderItemRepository struct{ mock.Mock }

func NewOrderItemRepository(t testingT) *OrderItemRepository {
	m := &OrderItemRepository{}
	register(t, &m.Mock)
	return m
}

func (m *OrderItemRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

type AuditLogRepository struct{ mock.Mock }

func NewAuditLogRepository(t testingT) *AuditLogRepository {
	m := &AuditLogRepository{}
	register(t, &m.Mock)
	return m
}

func (m *AuditLogRepository) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

var (
	_ repository.UserRepository         = (*UserRepository)(nil)
	_ repository.VerificationRepository = (*VerificationRepository)(nil)
	_ repository.RestaurantRepository   = (*RestaurantRepository)(nil)
	_ repository.CategoryRepository     = (*CategoryRepository)(nil)
	_ repository.DishRepository         = (*DishRepository)(nil)
	_ repository.PaymentRepository      = (*PaymentRepository)(nil)
	_ repository.OrderRepository        = (*OrderRepository)(nil)
	_ repository.OrderItemRepository    = (*OrderItemRepository)(nil)
	_ repository.AuditLogRepository     = (*AuditLogRepository)(nil)
)

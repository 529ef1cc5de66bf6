package graph

import (
	"context"
	"log/slog"

	"nubereats/internal/domain/model"
	"nubereats/internal/usecase"
	auth "nubereats/internal/usecase/auth_usecase"
)

// usecaseごとの約束。テストでは必要なものだけ差し替える

type AccountService interface {
	CreateAccount(ctx context.Context, in auth.RegisterUserInput) error
	Login(ctx context.Context, in auth.LoginInput) (string, error)
	VerifyEmail(ctx context.Context, code string) error
	UserProfile(ctx context.Context, userID int64) (model.User, error)
	EditProfile(ctx context.Context, user model.User, in auth.EditProfileInput) (model.User, error)
}

type RestaurantService interface {
	CreateRestaurant(ctx context.Context, owner model.User, in usecase.CreateRestaurantInput) (int64, error)
	EditRestaurant(ctx context.Context, owner model.User, in usecase.EditRestaurantInput) error
	DeleteRestaurant(ctx context.Context, owner model.User, restaurantID int64) error
	Restaurants(ctx context.Context, page usecase.PageInput) ([]model.Restaurant, usecase.PageInfo, error)
	SearchRestaurant(ctx context.Context, query string, page usecase.PageInput) ([]model.Restaurant, usecase.PageInfo, error)
	Restaurant(ctx context.Context, restaurantID int64) (model.Restaurant, error)
}

type CategoryService interface {
	AllCategories(ctx context.Context) ([]model.Category, error)
	Category(ctx context.Context, slug string, page usecase.PageInput) (model.Category, []model.Restaurant, usecase.PageInfo, error)
	RestaurantCount(ctx context.Context, categoryID int64) (int64, error)
}

type DishService interface {
	CreateDish(ctx context.Context, owner model.User, in usecase.CreateDishInput) (int64, error)
	EditDish(ctx context.Context, owner model.User, in usecase.EditDishInput) error
	DeleteDish(ctx context.Context, owner model.User, dishID int64) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, customer model.User, in usecase.CreateOrderInput) error
	GetOrders(ctx context.Context, user model.User, status *model.OrderStatus) ([]model.Order, error)
	GetOrder(ctx context.Context, user model.User, orderID int64) (model.Order, error)
	EditOrder(ctx context.Context, user model.User, orderID int64, status model.OrderStatus) error
	TakeOrder(ctx context.Context, driver model.User, orderID int64) error
	PendingOrders(ctx context.Context, owner model.User) (<-chan model.Order, error)
	CookedOrders(ctx context.Context) (<-chan model.Order, error)
	OrderUpdates(ctx context.Context, user model.User, orderID int64) (<-chan model.Order, error)
}

type PaymentService interface {
	CreatePayment(ctx context.Context, owner model.User, transactionID string, restaurantID int64) error
	GetPayments(ctx context.Context, user model.User) ([]model.Payment, error)
}

// Query/Mutation/Subscriptionのルート
// （フィールド名はQueryのメソッド名とぶつからないようにSvcを付ける）
type Resolver struct {
	AccountSvc    AccountService
	RestaurantSvc RestaurantService
	CategorySvc   CategoryService
	DishSvc       DishService
	OrderSvc      OrderService
	PaymentSvc    PaymentService
	Logger        *slog.Logger
}

// auth_usecaseのExecute群をAccountServiceにまとめる
type Accounts struct {
	Register *auth.RegisterUserUsecase
	LoginUC  *auth.LoginUsecase
	Verify   *auth.VerifyEmailUsecase
	Profile  *auth.ProfileUsecase
}

func (a Accounts) CreateAccount(ctx context.Context, in auth.RegisterUserInput) error {
	return a.Register.Execute(ctx, in)
}

func (a Accounts) Login(ctx context.Context, in auth.LoginInput) (string, error) {
	return a.LoginUC.Execute(ctx, in)
}

func (a Accounts) VerifyEmail(ctx context.Context, code string) error {
	return a.Verify.Execute(ctx, code)
}

func (a Accounts) UserProfile(ctx context.Context, userID int64) (model.User, error) {
	return a.Profile.UserProfile(ctx, userID)
}

func (a Accounts) EditProfile(ctx context.Context, user model.User, in auth.EditProfileInput) (model.User, error) {
	return a.Profile.EditProfile(ctx, user, in)
}

var (
	_ AccountService    = Accounts{}
	_ RestaurantService = (*usecase.RestaurantUsecase)(nil)
	_ CategoryService   = (*usecase.CategoryUsecase)(nil)
	_ DishService       = (*usecase.DishUsecase)(nil)
	_ OrderService      = (*usecase.OrderUsecase)(nil)
	_ PaymentService    = (*usecase.PaymentUsecase)(nil)
)

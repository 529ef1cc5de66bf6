package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nubereats/internal/domain/model"
	repo "nubereats/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderUsecase struct {
	tx         repo.TransactionManager
	orders     repo.OrderRepository
	policy     OrderPolicy
	publisher  OrderEventPublisher
	subscriber OrderEventSubscriber
	logger     *slog.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	policy OrderPolicy,
	publisher OrderEventPublisher,
	subscriber OrderEventSubscriber,
	logger *slog.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		orders:     orders,
		policy:     policy,
		publisher:  publisher,
		subscriber: subscriber,
		logger:     logger,
	}
}

// カートの1行（数量はなく1行 = 1個）
type CreateOrderItemInput struct {
	DishID  int64
	Options []model.OrderItemOption
}

type CreateOrderInput struct {
	RestaurantID int64
	Items        []CreateOrderItemInput
}

// 注文作成。レストラン → 各メニューの順に確認し、注文と明細を1トランザクションで保存する
func (u *OrderUsecase) CreateOrder(ctx context.Context, customer model.User, in CreateOrderInput) (err error) {
	defer CatchError(&err, "Failed to create order")

	var created model.Order
	var ownerID int64

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		restaurant, err := r.Restaurants().FindByID(ctx, in.RestaurantID)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFound("Restaurant not found with given id")
		}
		if err != nil {
			return err
		}

		//入力順にメニューを確認して単価を合計
		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(in.Items))
		for _, line := range in.Items {
			dish, err := r.Dishes().FindByID(ctx, line.DishID)
			if errors.Is(err, repo.ErrNotFound) {
				return NotFound("Dish not found with given id")
			}
			if err != nil {
				return err
			}

			total = total.Add(ResolveDishPrice(dish, line.Options))

			dishID := dish.ID
			items = append(items, model.OrderItem{
				DishID:  &dishID,
				Dish:    &dish,
				Options: datatypes.JSONSlice[model.OrderItemOption](line.Options),
			})
		}

		customerID := customer.ID
		restaurantID := restaurant.ID
		order := model.Order{
			CustomerID:   &customerID,
			RestaurantID: &restaurantID,
			Total:        &total,
			Status:       model.OrderStatusPending,
		}
		if err := r.Orders().Create(ctx, &order); err != nil {
			return err
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return err
		}

		order.Items = items
		order.Restaurant = &restaurant
		order.Customer = &customer
		created = order
		ownerID = restaurant.OwnerID
		return nil
	})
	if err != nil {
		return err
	}

	publishOrderEvent(ctx, u.publisher, u.logger, model.OrderEvent{
		Type:    model.OrderEventNewPending,
		Order:   created,
		OwnerID: ownerID,
	})
	return nil
}

// ロールごとの注文一覧（Client=自分の注文 / Delivery=担当分 / Owner=自分のレストラン全部）
func (u *OrderUsecase) GetOrders(ctx context.Context, user model.User, status *model.OrderStatus) (orders []model.Order, err error) {
	defer CatchError(&err, "Failed to load orders")

	f := repo.OrderListFilter{Status: status}
	id := user.ID
	switch user.Role {
	case model.RoleClient:
		f.CustomerID = &id
	case model.RoleDelivery:
		f.DriverID = &id
	case model.RoleOwner:
		f.OwnerID = &id
	default:
		return []model.Order{}, nil
	}

	return u.orders.List(ctx, f)
}

func (u *OrderUsecase) GetOrder(ctx context.Context, user model.User, orderID int64) (order model.Order, err error) {
	defer CatchError(&err, "Failed to load order")

	order, err = u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NotFound("Order not found with given id")
	}
	if err != nil {
		return model.Order{}, err
	}
	if !CanSeeOrder(order, user) {
		return model.Order{}, Forbidden("You cannot see this order")
	}
	return order, nil
}

type statusChange struct {
	Status model.OrderStatus `json:"status"`
}

type driverChange struct {
	DriverID *int64 `json:"driver_id"`
}

// ステータス更新（ロールごとに設定できるステータスが決まっている）
func (u *OrderUsecase) EditOrder(ctx context.Context, user model.User, orderID int64, status model.OrderStatus) (err error) {
	defer CatchError(&err, "Failed to edit order")

	var updated model.Order

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFound("Order not found with given id")
		}
		if err != nil {
			return err
		}

		if !CanSeeOrder(order, user) {
			return Forbidden("You cannot edit this order")
		}
		if !status.Valid() || !u.policy.CanChangeStatus(user.Role, order.Status, status) {
			return InvalidTransition(fmt.Sprintf("You cannot change order's status to %s", status))
		}

		//statusだけ更新
		before := order.Status
		if err := r.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			return err
		}

		if err := writeAudit(ctx, r.AuditLogs(), user.ID, model.AuditActionUpdateOrderStatus, orderID,
			statusChange{Status: before}, statusChange{Status: status}); err != nil {
			return err
		}

		order.Status = status
		updated = order
		return nil
	})
	if err != nil {
		return err
	}

	ownerID := ownerIDOf(updated)
	if user.Role == model.RoleOwner && status == model.OrderStatusCooked {
		publishOrderEvent(ctx, u.publisher, u.logger, model.OrderEvent{
			Type:    model.OrderEventNewCooked,
			Order:   updated,
			OwnerID: ownerID,
		})
	}
	publishOrderEvent(ctx, u.publisher, u.logger, model.OrderEvent{
		Type:    model.OrderEventNewUpdate,
		Order:   updated,
		OwnerID: ownerID,
	})
	return nil
}

// 配達員が注文を引き受ける。先に引き受けた1人だけ成功
func (u *OrderUsecase) TakeOrder(ctx context.Context, driver model.User, orderID int64) (err error) {
	defer CatchError(&err, "Failed to take order")

	var updated model.Order

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFound("Order not found with given id")
		}
		if err != nil {
			return err
		}
		if order.DriverID != nil {
			return AlreadyExists("This order already has a driver")
		}

		ok, err := r.Orders().AssignDriver(ctx, orderID, driver.ID)
		if err != nil {
			return err
		}
		if !ok {
			return AlreadyExists("This order already has a driver")
		}

		driverID := driver.ID
		if err := writeAudit(ctx, r.AuditLogs(), driver.ID, model.AuditActionTakeOrder, orderID,
			driverChange{}, driverChange{DriverID: &driverID}); err != nil {
			return err
		}

		order.DriverID = &driverID
		order.Driver = &driver
		updated = order
		return nil
	})
	if err != nil {
		return err
	}

	publishOrderEvent(ctx, u.publisher, u.logger, model.OrderEvent{
		Type:    model.OrderEventNewUpdate,
		Order:   updated,
		OwnerID: ownerIDOf(updated),
	})
	return nil
}

// オーナー向け：自分のレストランの新規注文
func (u *OrderUsecase) PendingOrders(ctx context.Context, owner model.User) (ch <-chan model.Order, err error) {
	defer CatchError(&err, "Failed to subscribe pending orders")

	in, err := u.subscribe(ctx, model.OrderEventNewPending)
	if err != nil {
		return nil, err
	}
	return forwardOrders(ctx, in, func(ev model.OrderEvent) bool {
		return ev.OwnerID == owner.ID
	}), nil
}

// 配達員向け：調理済みの注文すべて
func (u *OrderUsecase) CookedOrders(ctx context.Context) (ch <-chan model.Order, err error) {
	defer CatchError(&err, "Failed to subscribe cooked orders")

	in, err := u.subscribe(ctx, model.OrderEventNewCooked)
	if err != nil {
		return nil, err
	}
	return forwardOrders(ctx, in, func(model.OrderEvent) bool { return true }), nil
}

// 指定した注文の更新（見られる人だけ）
func (u *OrderUsecase) OrderUpdates(ctx context.Context, user model.User, orderID int64) (ch <-chan model.Order, err error) {
	defer CatchError(&err, "Failed to subscribe order updates")

	in, err := u.subscribe(ctx, model.OrderEventNewUpdate)
	if err != nil {
		return nil, err
	}
	return forwardOrders(ctx, in, func(ev model.OrderEvent) bool {
		if ev.Order.ID != orderID {
			return false
		}
		o := ev.Order
		if o.Restaurant == nil {
			o.Restaurant = &model.Restaurant{OwnerID: ev.OwnerID}
		}
		return CanSeeOrder(o, user)
	}), nil
}

func (u *OrderUsecase) subscribe(ctx context.Context, typ model.OrderEventType) (<-chan model.OrderEvent, error) {
	if u.subscriber == nil {
		return nil, errors.New("order event subscriber is not configured")
	}
	return u.subscriber.Subscribe(ctx, typ)
}

func ownerIDOf(o model.Order) int64 {
	if id := o.OwnerID(); id != nil {
		return *id
	}
	return 0
}

// 監査ログ（before/afterはJSON）
func writeAudit(ctx context.Context, logs repo.AuditLogRepository, actorID int64, action model.AuditAction, orderID int64, before, after any) error {
	b, err := json.Marshal(before)
	if err != nil {
		return err
	}
	a, err := json.Marshal(after)
	if err != nil {
		return err
	}
	return logs.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   string(b),
		AfterJSON:    string(a),
		CreatedAt:    time.Now(),
	})
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"nubereats/internal/domain/model"
	"nubereats/internal/repository"
	"nubereats/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	client    = model.User{ID: 1, Role: model.RoleClient}
	driver    = model.User{ID: 2, Role: model.RoleDelivery}
	chef      = model.User{ID: 3, Role: model.RoleOwner}
	otherUser = model.User{ID: 50, Role: model.RoleClient}
)

type orderFixture struct {
	tx          *mocks.TxManager
	restaurants *mocks.RestaurantRepository
	dishes      *mocks.DishRepository
	orders      *mocks.OrderRepository
	items       *mocks.OrderItemRepository
	audit       *mocks.AuditLogRepository
	pub         *fakePublisher
	sub         *fakeSubscriber
	uc          *OrderUsecase
}

func newOrderFixture(t *testing.T, policy OrderPolicy) *orderFixture {
	t.Helper()
	f := &orderFixture{
		restaurants: mocks.NewRestaurantRepository(t),
		dishes:      mocks.NewDishRepository(t),
		orders:      mocks.NewOrderRepository(t),
		items:       mocks.NewOrderItemRepository(t),
		audit:       mocks.NewAuditLogRepository(t),
		pub:         &fakePublisher{},
		sub:         newFakeSubscriber(),
	}
	f.tx = &mocks.TxManager{Repos: &mocks.TxRepos{
		RestaurantRepo: f.restaurants,
		DishRepo:       f.dishes,
		OrderRepo:      f.orders,
		OrderItemRepo:  f.items,
		AuditLogRepo:   f.audit,
	}}
	f.uc = NewOrderUsecase(f.tx, f.orders, policy, f.pub, f.sub, discardLogger())
	return f
}

// 客1・配達員なし・オーナー3の注文
func placedOrder(status model.OrderStatus) model.Order {
	return model.Order{
		ID:           9,
		CustomerID:   i64(client.ID),
		RestaurantID: i64(4),
		Restaurant:   &model.Restaurant{ID: 4, OwnerID: chef.ID},
		Status:       status,
	}
}

// =====================
// CreateOrder
// =====================

func TestCreateOrder_Success(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, OrderPolicy{})

	f.restaurants.On("FindByID", ctx, int64(4)).Return(model.Restaurant{ID: 4, OwnerID: chef.ID}, nil).Once()
	f.dishes.On("FindByID", ctx, int64(11)).Return(model.Dish{
		ID: 11, Price: dec("10"),
		Options: []model.DishOption{{Name: "Pickle", Extra: decPtr("2")}},
	}, nil).Once()
	f.dishes.On("FindByID", ctx, int64(12)).Return(model.Dish{ID: 12, Price: dec("5.5")}, nil).Once()
	f.orders.On("Create", ctx, mock.MatchedBy(func(o *model.Order) bool {
		return *o.CustomerID == client.ID && *o.RestaurantID == 4 &&
			o.Status == model.OrderStatusPending && o.Total.Equal(dec("17.5"))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Order).ID = 100
	}).Return(nil).Once()
	f.items.On("CreateBulk", ctx, int64(100), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 && *items[0].DishID == 11 && len(items[0].Options) == 1 && *items[1].DishID == 12
	})).Return(nil).Once()

	err := f.uc.CreateOrder(ctx, client, CreateOrderInput{
		RestaurantID: 4,
		Items: []CreateOrderItemInput{
			{DishID: 11, Options: []model.OrderItemOption{{Name: "Pickle"}}},
			{DishID: 12},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.tx.Committed)

	require.Len(t, f.pub.events, 1)
	ev := f.pub.events[0]
	assert.Equal(t, model.OrderEventNewPending, ev.Type)
	assert.Equal(t, chef.ID, ev.OwnerID)
	assert.Equal(t, int64(100), ev.Order.ID)
	assert.Len(t, ev.Order.Items, 2)
}

func TestCreateOrder_RestaurantNotFound(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, OrderPolicy{})
	f.restaurants.On("FindByID", ctx, int64(4)).Return(model.Restaurant{}, repository.ErrNotFound).Once()

	err := f.uc.CreateOrder(ctx, client, CreateOrderInput{RestaurantID: 4, Items: []CreateOrderItemInput{{DishID: 11}}})
	assertKind(t, err, KindNotFound, "Restaurant not found with given id")
	assert.Equal(t, 1, f.tx.RolledBack)
	assert.Empty(t, f.pub.events)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_DishNotFoundWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, OrderPolicy{})
	f.restaurants.On("FindByID", ctx, int64(4)).Return(model.Restaurant{ID: 4, OwnerID: chef.ID}, nil).Once()
	f.dishes.On("FindByID", ctx, int64(11)).Return(model.Dish{ID: 11, Price: dec("1")}, nil).Once()
	f.dishes.On("FindByID", ctx, int64(404)).Return(model.Dish{}, repository.ErrNotFound).Once()

	err := f.uc.CreateOrder(ctx, client, CreateOrderInput{
		RestaurantID: 4,
		Items:        []CreateOrderItemInput{{DishID: 11}, {DishID: 404}},
	})
	assertKind(t, err, KindNotFound, "Dish not found with given id")
	assert.Equal(t, 1, f.tx.RolledBack)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.items.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_PublishFailureIsNotAnError(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, OrderPolicy{})
	f.pub.err = errors.New("redis down")

	f.restaurants.On("FindByID", ctx, int64(4)).Return(model.Restaurant{ID: 4, OwnerID: chef.ID}, nil).Once()
	f.orders.On("Create", ctx, mock.Anything).Return(nil).Once()
	f.items.On("CreateBulk", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, f.uc.CreateOrder(ctx, client, CreateOrderInput{RestaurantID: 4}))
	assert.Len(t, f.pub.events, 1)
}

// =====================
// GetOrders / GetOrder
// =====================

func TestGetOrders_FiltersByRole(t *testing.T) {
	ctx := context.Background()
	cooked := model.OrderStatusCooked

	tests := []struct {
		name   string
		user   model.User
		status *model.OrderStatus
		want   repository.OrderListFilter
	}{
		{"client", client, nil, repository.OrderListFilter{CustomerID: i64(client.ID)}},
		{"driver", driver, nil, repository.OrderListFilter{DriverID: i64(driver.ID)}},
		{"owner with status", chef, &cooked, repository.OrderListFilter{OwnerID: i64(chef.ID), Status: &cooked}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t, OrderPolicy{})
			f.orders.On("List", ctx, tt.want).Return([]model.Order{{ID: 1}}, nil).Once()

			got, err := f.uc.GetOrders(ctx, tt.user, tt.status)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("participant can see", func(t *testing.T) {
		f := newOrderFixture(t, OrderPolicy{})
		f.orders.On("FindByID", ctx, int64(9)).Return(placedOrder(model.OrderStatusPending), nil).Once()

		o, err := f.uc.GetOrder(ctx, chef, 9)
		require.NoError(t, err)
		assert.Equal(t, int64(9), o.ID)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		f := newOrderFixture(t, OrderPolicy{})
		f.orders.On("FindByID", ctx, int64(9)).Return(placedOrder(model.OrderStatusPending), nil).Once()

		_, err := f.uc.GetOrder(ctx, otherUser, 9)
		assertKind(t, err, KindForbidden, "You cannot see this order")
	})

	t.Run("missing", func(t *testing.T) {
		f := newOrderFixture(t, OrderPolicy{})
		f.orders.On("FindByID", ctx, int64(9)).Return(model.Order{}, repository.ErrNotFound).Once()

		_, err := f.uc.GetOrder(ctx, client, 9)
		assertKind(t, err, KindNotFound, "Order not found with given id")
	})
}

// =====================
// EditOrder
// =====================

func TestEditOrder_OwnerCookedPublishesTwice(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, OrderPolicy{})

	f.orders.On("FindByID", ctx, int64(9)).Return(placedOrder(model.OrderStatusCooking), nil).Once()
	f.orders.On("UpdateStatus", ctx, int64(9), model.OrderStatusCooked).Return(nil).Once()
	f.audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.ActorUserID == chef.ID &&
			l.Action == model.AuditActionUpdateOrderStatus &&
			l.ResourceID == 9 &&
			l.BeforeJSON == `{"status":"Cooking"}` &&
			l.AfterJSON == `{"status":"Cooked"}`
	})).Return(nil).Once()

	require.NoError(t, f.uc.EditOrder(ctx, chef, 9, model.OrderStatusCooked))
	assert.Equal(t, []model.OrderEventType{model.OrderEventNewCooked, model.OrderEventNewUpdate}, f.pub.types())
	assert.Equal(t, model.OrderStatusCooked, f.pub.events[1].Order.Status)
	assert.Equal(t, chef.ID, f.pub.events[1].OwnerID)
}

func TestEditOrder_DriverPickupPublishesUpdateOnly(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, OrderPolicy{})

	o := placedOrder(model.OrderStatusCooked)
	o.DriverID = i64(driver.ID)
	f.orders.On("FindByID", ctx, int64(9)).Return(o, nil).Once()
	f.orders.On("UpdateStatus", ctx, int64(9), model.OrderStatusPickedUp).Return(nil).Once()
	f.audit.On("Create", ctx, mock.Anything).Return(nil).Once()

	require.NoError(t, f.uc.EditOrder(ctx, driver, 9, model.OrderStatusPickedUp))
	assert.Equal(t, []model.OrderEventType{model.OrderEventNewUpdate}, f.pub.types())
}

func TestEditOrder_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		policy  OrderPolicy
		user    model.User
		current model.OrderStatus
		to      model.OrderStatus
		kind    Kind
		msg     string
	}{
		{
			name: "client cannot change status", user: client,
			current: model.OrderStatusPending, to: model.OrderStatusCooking,
			kind: KindInvalidTransition, msg: "You cannot change order's status to Cooking",
		},
		{
			name: "owner cannot deliver", user: chef,
			current: model.OrderStatusCooked, to: model.OrderStatusDelivered,
			kind: KindInvalidTransition, msg: "You cannot change order's status to Delivered",
		},
		{
			name: "strict flow forbids skipping", policy: OrderPolicy{StrictFlow: true}, user: chef,
			current: model.OrderStatusPending, to: model.OrderStatusCooked,
			kind: KindInvalidTransition, msg: "You cannot change order's status to Cooked",
		},
		{
			name: "unknown status", user: chef,
			current: model.OrderStatusPending, to: model.OrderStatus("Burnt"),
			kind: KindInvalidTransition, msg: "You cannot change order's status to Burnt",
		},
		{
			name: "outsider", user: otherUser,
			current: model.OrderStatusPending, to: model.OrderStatusCooking,
			kind: KindForbidden, msg: "You cannot edit this order",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t, tt.policy)
			f.orders.On("FindByID", ctx, int64(9)).Return(placedOrder(tt.current), nil).Once()

			err := f.uc.EditOrder(ctx, tt.user, 9, tt.to)
			assertKind(t, err, tt.kind, tt.msg)
			assert.Equal(t, 1, f.tx.RolledBack)
			assert.Empty(t, f.pub.events)
			f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestEditOrder_StrictFlowAllowsNextStep(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, OrderPolicy{StrictFlow: true})

	f.orders.On("FindByID", ctx, int64(9)).Return(placedOrder(model.OrderStatusPending), nil).Once()
	f.orders.On("UpdateStatus", ctx, int64(9), model.OrderStatusCooking).Return(nil).Once()
	f.audit.On("Create", ctx, mock.Anything).Return(nil).Once()

	require.NoError(t, f.uc.EditOrder(ctx, chef, 9, model.OrderStatusCooking))
	assert.Equal(t, []model.OrderEventType{model.OrderEventNewUpdate}, f.pub.types())
}

// =====================
// TakeOrder
// =====================

func TestTakeOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("first driver wins", func(t *testing.T) {
		f := newOrderFixture(t, OrderPolicy{})
		f.orders.On("FindByID", ctx, int64(9)).Return(placedOrder(model.OrderStatusCooked), nil).Once()
		f.orders.On("AssignDriver", ctx, int64(9), driver.ID).Return(true, nil).Once()
		f.audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
			return l.Action == model.AuditActionTakeOrder && l.AfterJSON == `{"driver_id":2}`
		})).Return(nil).Once()

		require.NoError(t, f.uc.TakeOrder(ctx, driver, 9))
		require.Len(t, f.pub.events, 1)
		ev := f.pub.events[0]
		assert.Equal(t, model.OrderEventNewUpdate, ev.Type)
		assert.Equal(t, driver.ID, *ev.Order.DriverID)
		assert.Equal(t, chef.ID, ev.OwnerID)
	})

	t.Run("already has a driver", func(t *testing.T) {
		f := newOrderFixture(t, OrderPolicy{})
		o := placedOrder(model.OrderStatusCooked)
		o.DriverID = i64(77)
		f.orders.On("FindByID", ctx, int64(9)).Return(o, nil).Once()

		err := f.uc.TakeOrder(ctx, driver, 9)
		assertKind(t, err, KindAlreadyExists, "This order already has a driver")
		assert.Empty(t, f.pub.events)
	})

	t.Run("lost the race", func(t *testing.T) {
		f := newOrderFixture(t, OrderPolicy{})
		f.orders.On("FindByID", ctx, int64(9)).Return(placedOrder(model.OrderStatusCooked), nil).Once()
		f.orders.On("AssignDriver", ctx, int64(9), driver.ID).Return(false, nil).Once()

		err := f.uc.TakeOrder(ctx, driver, 9)
		assertKind(t, err, KindAlreadyExists, "This order already has a driver")
		assert.Equal(t, 1, f.tx.RolledBack)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newOrderFixture(t, OrderPolicy{})
		f.orders.On("FindByID", ctx, int64(9)).Return(model.Order{}, repository.ErrNotFound).Once()

		assertKind(t, f.uc.TakeOrder(ctx, driver, 9), KindNotFound, "Order not found with given id")
	})
}

// =====================
// subscriptions
// =====================

func receive(t *testing.T, ch <-chan model.Order) model.Order {
	t.Helper()
	select {
	case o, ok := <-ch:
		require.True(t, ok, "channel closed")
		return o
	case <-time.After(time.Second):
		t.Fatal("no order received")
		return model.Order{}
	}
}

func assertNothing(t *testing.T, ch <-chan model.Order) {
	t.Helper()
	select {
	case o := <-ch:
		t.Fatalf("unexpected order %d", o.ID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPendingOrders_OnlyOwnRestaurants(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newOrderFixture(t, OrderPolicy{})

	ch, err := f.uc.PendingOrders(ctx, chef)
	require.NoError(t, err)

	in := f.sub.chans[model.OrderEventNewPending]
	in <- model.OrderEvent{Type: model.OrderEventNewPending, Order: model.Order{ID: 1}, OwnerID: 999}
	in <- model.OrderEvent{Type: model.OrderEventNewPending, Order: model.Order{ID: 2}, OwnerID: chef.ID}

	assert.Equal(t, int64(2), receive(t, ch).ID)
	assertNothing(t, ch)
}

func TestCookedOrders_ForwardsEverything(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newOrderFixture(t, OrderPolicy{})

	ch, err := f.uc.CookedOrders(ctx)
	require.NoError(t, err)

	in := f.sub.chans[model.OrderEventNewCooked]
	in <- model.OrderEvent{Order: model.Order{ID: 1}, OwnerID: 5}
	in <- model.OrderEvent{Order: model.Order{ID: 2}, OwnerID: 6}

	assert.Equal(t, int64(1), receive(t, ch).ID)
	assert.Equal(t, int64(2), receive(t, ch).ID)
}

func TestOrderUpdates_FiltersByOrderAndVisibility(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newOrderFixture(t, OrderPolicy{})

	ch, err := f.uc.OrderUpdates(ctx, chef, 9)
	require.NoError(t, err)

	in := f.sub.chans[model.OrderEventNewUpdate]
	// 別の注文
	in <- model.OrderEvent{Order: model.Order{ID: 8, CustomerID: i64(client.ID)}, OwnerID: chef.ID}
	// 同じ注文だが他人のレストラン
	in <- model.OrderEvent{Order: model.Order{ID: 9, CustomerID: i64(client.ID)}, OwnerID: 123}
	// Restaurantなしでもイベントのオーナーで判定する
	in <- model.OrderEvent{Order: model.Order{ID: 9, CustomerID: i64(client.ID), Status: model.OrderStatusCooked}, OwnerID: chef.ID}

	got := receive(t, ch)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, model.OrderStatusCooked, got.Status)
	assertNothing(t, ch)
}

func TestSubscriptions_CloseWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := newOrderFixture(t, OrderPolicy{})

	ch, err := f.uc.CookedOrders(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
}

func TestSubscriptions_SubscribeError(t *testing.T) {
	f := newOrderFixture(t, OrderPolicy{})
	f.sub.err = errors.New("redis down")

	_, err := f.uc.PendingOrders(context.Background(), chef)
	assertKind(t, err, KindUnexpected, "Failed to subscribe pending orders")
}

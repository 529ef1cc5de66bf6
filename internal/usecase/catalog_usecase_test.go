package usecase

import (
	"context"
	"errors"
	"testing"

	"nubereats/internal/domain/model"
	"nubereats/internal/repository"
	"nubereats/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	owner    = model.User{ID: 10, Role: model.RoleOwner}
	stranger = model.User{ID: 99, Role: model.RoleOwner}
)

// =====================
// restaurant
// =====================

func TestCreateRestaurant_CreatesCategoryFromName(t *testing.T) {
	ctx := context.Background()
	restaurants := mocks.NewRestaurantRepository(t)
	categories := mocks.NewCategoryRepository(t)
	uc := NewRestaurantUsecase(restaurants, categories)

	categories.On("FindBySlug", ctx, "korean-bbq").Return(model.Category{}, repository.ErrNotFound).Once()
	categories.On("Create", ctx, mock.MatchedBy(func(c *model.Category) bool {
		return c.Name == "korean bbq" && c.Slug == "korean-bbq"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Category).ID = 7
	}).Return(nil).Once()
	restaurants.On("Create", ctx, mock.MatchedBy(func(r *model.Restaurant) bool {
		return r.OwnerID == owner.ID && r.CategoryID != nil && *r.CategoryID == 7 && r.Name == "Seoul House"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Restaurant).ID = 42
	}).Return(nil).Once()

	id, err := uc.CreateRestaurant(ctx, owner, CreateRestaurantInput{
		Name:         " Seoul House ",
		Address:      "Gangnam",
		CoverImg:     "https://img/cover.png",
		CategoryName: " Korean BBQ ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestCreateRestaurant_ReusesConcurrentCategory(t *testing.T) {
	ctx := context.Background()
	restaurants := mocks.NewRestaurantRepository(t)
	categories := mocks.NewCategoryRepository(t)
	uc := NewRestaurantUsecase(restaurants, categories)

	categories.On("FindBySlug", ctx, "pizza").Return(model.Category{}, repository.ErrNotFound).Once()
	categories.On("Create", ctx, mock.Anything).Return(repository.ErrAlreadyExists).Once()
	categories.On("FindBySlug", ctx, "pizza").Return(model.Category{ID: 3, Slug: "pizza"}, nil).Once()
	restaurants.On("Create", ctx, mock.MatchedBy(func(r *model.Restaurant) bool {
		return *r.CategoryID == 3
	})).Return(nil).Once()

	_, err := uc.CreateRestaurant(ctx, owner, CreateRestaurantInput{
		Name: "Pizza Hub", Address: "Main st", CoverImg: "x", CategoryName: "Pizza",
	})
	require.NoError(t, err)
}

func TestCreateRestaurant_InvalidInput(t *testing.T) {
	uc := NewRestaurantUsecase(mocks.NewRestaurantRepository(t), mocks.NewCategoryRepository(t))

	_, err := uc.CreateRestaurant(context.Background(), owner, CreateRestaurantInput{
		Name: "abc", Address: "Main st", CoverImg: "x", CategoryName: "Pizza",
	})
	assertKind(t, err, KindInvalidInput, "Restaurant name must be at least 5 characters")
}

func TestEditRestaurant(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		uc := NewRestaurantUsecase(restaurants, mocks.NewCategoryRepository(t))
		restaurants.On("FindByID", ctx, int64(1)).Return(model.Restaurant{}, repository.ErrNotFound).Once()

		err := uc.EditRestaurant(ctx, owner, EditRestaurantInput{RestaurantID: 1})
		assertKind(t, err, KindNotFound, "Restaurant not found with given id")
	})

	t.Run("not the owner", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		uc := NewRestaurantUsecase(restaurants, mocks.NewCategoryRepository(t))
		restaurants.On("FindByID", ctx, int64(1)).Return(model.Restaurant{ID: 1, OwnerID: owner.ID}, nil).Once()

		err := uc.EditRestaurant(ctx, stranger, EditRestaurantInput{RestaurantID: 1, Name: strPtr("New name")})
		assertKind(t, err, KindForbidden, "Only owner can edit restaurant")
	})

	t.Run("patch with new category", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		categories := mocks.NewCategoryRepository(t)
		uc := NewRestaurantUsecase(restaurants, categories)

		restaurants.On("FindByID", ctx, int64(1)).Return(model.Restaurant{ID: 1, OwnerID: owner.ID}, nil).Once()
		categories.On("FindBySlug", ctx, "vegan").Return(model.Category{ID: 5}, nil).Once()
		restaurants.On("Update", ctx, int64(1), mock.MatchedBy(func(p repository.RestaurantPatch) bool {
			return p.Name != nil && *p.Name == "Green Table" && p.CategoryID != nil && *p.CategoryID == 5 && p.Address == nil
		})).Return(nil).Once()

		err := uc.EditRestaurant(ctx, owner, EditRestaurantInput{
			RestaurantID: 1,
			Name:         strPtr("Green Table"),
			CategoryName: strPtr("Vegan"),
		})
		require.NoError(t, err)
	})
}

func TestDeleteRestaurant(t *testing.T) {
	ctx := context.Background()
	restaurants := mocks.NewRestaurantRepository(t)
	uc := NewRestaurantUsecase(restaurants, mocks.NewCategoryRepository(t))

	restaurants.On("FindByID", ctx, int64(1)).Return(model.Restaurant{ID: 1, OwnerID: owner.ID}, nil).Twice()
	restaurants.On("Delete", ctx, int64(1)).Return(nil).Once()

	assertKind(t, uc.DeleteRestaurant(ctx, stranger, 1), KindForbidden, "Only owner can delete restaurant")
	require.NoError(t, uc.DeleteRestaurant(ctx, owner, 1))
}

func TestRestaurants_Pagination(t *testing.T) {
	ctx := context.Background()
	restaurants := mocks.NewRestaurantRepository(t)
	uc := NewRestaurantUsecase(restaurants, mocks.NewCategoryRepository(t))

	restaurants.On("List", ctx, repository.RestaurantListQuery{Page: 2, Limit: 2}).
		Return([]model.Restaurant{{ID: 3}, {ID: 4}}, int64(20), nil).Once()

	items, info, err := uc.Restaurants(ctx, PageInput{Page: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, PageInfo{TotalResults: 20, TotalPages: 10}, info)

	_, _, err = uc.Restaurants(ctx, PageInput{Page: -3})
	assertKind(t, err, KindInvalidInput, "Page must be greater than 0")
}

func TestSearchRestaurant(t *testing.T) {
	ctx := context.Background()
	restaurants := mocks.NewRestaurantRepository(t)
	uc := NewRestaurantUsecase(restaurants, mocks.NewCategoryRepository(t))

	restaurants.On("List", ctx, repository.RestaurantListQuery{Page: 1, Limit: 25, Name: "piz"}).
		Return([]model.Restaurant{{ID: 1, Name: "Pizza Hub"}}, int64(3), nil).Once()

	items, info, err := uc.SearchRestaurant(ctx, "piz", PageInput{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), info.TotalPages)
	assert.Equal(t, int64(3), info.TotalResults)
}

func TestRestaurant_HidesStorageError(t *testing.T) {
	ctx := context.Background()
	restaurants := mocks.NewRestaurantRepository(t)
	uc := NewRestaurantUsecase(restaurants, mocks.NewCategoryRepository(t))

	restaurants.On("FindByIDWithMenu", ctx, int64(8)).Return(model.Restaurant{}, errors.New("dial tcp: timeout")).Once()

	_, err := uc.Restaurant(ctx, 8)
	assertKind(t, err, KindUnexpected, "Failed to load restaurant")
}

// =====================
// category
// =====================

func TestCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown slug", func(t *testing.T) {
		categories := mocks.NewCategoryRepository(t)
		uc := NewCategoryUsecase(categories, mocks.NewRestaurantRepository(t))
		categories.On("FindBySlug", ctx, "nope").Return(model.Category{}, repository.ErrNotFound).Once()

		_, _, _, err := uc.Category(ctx, "nope", PageInput{})
		assertKind(t, err, KindNotFound, "Category not found with given slug")
	})

	t.Run("empty category is an empty page", func(t *testing.T) {
		categories := mocks.NewCategoryRepository(t)
		restaurants := mocks.NewRestaurantRepository(t)
		uc := NewCategoryUsecase(categories, restaurants)

		categories.On("FindBySlug", ctx, "vegan").Return(model.Category{ID: 5, Slug: "vegan"}, nil).Once()
		restaurants.On("List", ctx, mock.MatchedBy(func(q repository.RestaurantListQuery) bool {
			return q.CategoryID != nil && *q.CategoryID == 5 && q.Page == 1 && q.Limit == 25
		})).Return([]model.Restaurant{}, int64(0), nil).Once()

		c, items, info, err := uc.Category(ctx, "vegan", PageInput{})
		require.NoError(t, err)
		assert.Equal(t, int64(5), c.ID)
		assert.Empty(t, items)
		assert.Equal(t, PageInfo{}, info)
	})
}

func TestRestaurantCount(t *testing.T) {
	ctx := context.Background()
	categories := mocks.NewCategoryRepository(t)
	uc := NewCategoryUsecase(categories, mocks.NewRestaurantRepository(t))
	categories.On("CountRestaurants", ctx, int64(5)).Return(int64(4), nil).Once()

	n, err := uc.RestaurantCount(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

// =====================
// dish
// =====================

func TestCreateDish(t *testing.T) {
	ctx := context.Background()
	valid := CreateDishInput{
		RestaurantID: 1,
		Name:         "Bibimbap",
		Price:        dec("12.5"),
		Description:  "Rice with vegetables",
		Options: []model.DishOption{
			{Name: "Egg", Extra: decPtr("1")},
		},
	}

	t.Run("owner adds a dish", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		dishes := mocks.NewDishRepository(t)
		uc := NewDishUsecase(restaurants, dishes)

		restaurants.On("FindByID", ctx, int64(1)).Return(model.Restaurant{ID: 1, OwnerID: owner.ID}, nil).Once()
		dishes.On("Create", ctx, mock.MatchedBy(func(d *model.Dish) bool {
			return d.RestaurantID == 1 && d.Name == "Bibimbap" && len(d.Options) == 1
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Dish).ID = 77
		}).Return(nil).Once()

		id, err := uc.CreateDish(ctx, owner, valid)
		require.NoError(t, err)
		assert.Equal(t, int64(77), id)
	})

	t.Run("someone else's restaurant", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		uc := NewDishUsecase(restaurants, mocks.NewDishRepository(t))
		restaurants.On("FindByID", ctx, int64(1)).Return(model.Restaurant{ID: 1, OwnerID: owner.ID}, nil).Once()

		_, err := uc.CreateDish(ctx, stranger, valid)
		assertKind(t, err, KindForbidden, "Only owner can add menu")
	})

	t.Run("missing restaurant", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		uc := NewDishUsecase(restaurants, mocks.NewDishRepository(t))
		restaurants.On("FindByID", ctx, int64(1)).Return(model.Restaurant{}, repository.ErrNotFound).Once()

		_, err := uc.CreateDish(ctx, owner, valid)
		assertKind(t, err, KindNotFound, "Restaurant not found with given id")
	})

	t.Run("negative price", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		uc := NewDishUsecase(restaurants, mocks.NewDishRepository(t))
		restaurants.On("FindByID", ctx, int64(1)).Return(model.Restaurant{ID: 1, OwnerID: owner.ID}, nil).Once()

		in := valid
		in.Price = dec("-1")
		_, err := uc.CreateDish(ctx, owner, in)
		assertKind(t, err, KindInvalidInput, "Dish price must not be negative")
	})
}

func TestEditAndDeleteDish(t *testing.T) {
	ctx := context.Background()
	dish := model.Dish{ID: 5, RestaurantID: 1, Restaurant: &model.Restaurant{ID: 1, OwnerID: owner.ID}}

	t.Run("edit", func(t *testing.T) {
		dishes := mocks.NewDishRepository(t)
		uc := NewDishUsecase(mocks.NewRestaurantRepository(t), dishes)

		dishes.On("FindByID", ctx, int64(5)).Return(dish, nil).Once()
		dishes.On("Update", ctx, int64(5), mock.MatchedBy(func(p repository.DishPatch) bool {
			return p.Price != nil && p.Price.Equal(dec("9")) && p.Name == nil
		})).Return(nil).Once()

		require.NoError(t, uc.EditDish(ctx, owner, EditDishInput{DishID: 5, Price: decPtr("9")}))
	})

	t.Run("edit by stranger", func(t *testing.T) {
		dishes := mocks.NewDishRepository(t)
		uc := NewDishUsecase(mocks.NewRestaurantRepository(t), dishes)
		dishes.On("FindByID", ctx, int64(5)).Return(dish, nil).Once()

		err := uc.EditDish(ctx, stranger, EditDishInput{DishID: 5})
		assertKind(t, err, KindForbidden, "Only owner can edit dish")
	})

	t.Run("delete missing dish", func(t *testing.T) {
		dishes := mocks.NewDishRepository(t)
		uc := NewDishUsecase(mocks.NewRestaurantRepository(t), dishes)
		dishes.On("FindByID", ctx, int64(6)).Return(model.Dish{}, repository.ErrNotFound).Once()

		assertKind(t, uc.DeleteDish(ctx, owner, 6), KindNotFound, "Dish not found with given id")
	})

	t.Run("delete", func(t *testing.T) {
		dishes := mocks.NewDishRepository(t)
		uc := NewDishUsecase(mocks.NewRestaurantRepository(t), dishes)
		dishes.On("FindByID", ctx, int64(5)).Return(dish, nil).Once()
		dishes.On("Delete", ctx, int64(5)).Return(nil).Once()

		require.NoError(t, uc.DeleteDish(ctx, owner, 5))
	})
}

// =====================
// payment
// =====================

func TestCreatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("records payment for own restaurant", func(t *testing.T) {
		payments := mocks.NewPaymentRepository(t)
		restaurants := mocks.NewRestaurantRepository(t)
		uc := NewPaymentUsecase(payments, restaurants)

		restaurants.On("FindByID", ctx, int64(1)).Return(model.Restaurant{ID: 1, OwnerID: owner.ID}, nil).Once()
		payments.On("Create", ctx, &model.Payment{TransactionID: "tx-1", UserID: owner.ID, RestaurantID: 1}).Return(nil).Once()

		require.NoError(t, uc.CreatePayment(ctx, owner, "tx-1", 1))
	})

	t.Run("not the owner", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		uc := NewPaymentUsecase(mocks.NewPaymentRepository(t), restaurants)
		restaurants.On("FindByID", ctx, int64(1)).Return(model.Restaurant{ID: 1, OwnerID: owner.ID}, nil).Once()

		err := uc.CreatePayment(ctx, stranger, "tx-1", 1)
		assertKind(t, err, KindForbidden, "Only owner of the restaurant can create payment")
	})

	t.Run("blank transaction id", func(t *testing.T) {
		uc := NewPaymentUsecase(mocks.NewPaymentRepository(t), mocks.NewRestaurantRepository(t))
		err := uc.CreatePayment(ctx, owner, "  ", 1)
		assertKind(t, err, KindInvalidInput, "Transaction id is required")
	})
}

func TestGetPayments(t *testing.T) {
	ctx := context.Background()
	payments := mocks.NewPaymentRepository(t)
	uc := NewPaymentUsecase(payments, mocks.NewRestaurantRepository(t))
	payments.On("ListByUserID", ctx, owner.ID).Return([]model.Payment{{ID: 1}, {ID: 2}}, nil).Once()

	items, err := uc.GetPayments(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

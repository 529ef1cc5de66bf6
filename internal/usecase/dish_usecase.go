package usecase

import (
	"context"
	"errors"
	"strings"

	"nubereats/internal/domain/model"
	repo "nubereats/internal/repository"
	"nubereats/internal/validator"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type DishUsecase struct {
	restaurants repo.RestaurantRepository
	dishes      repo.DishRepository
}

func NewDishUsecase(restaurants repo.RestaurantRepository, dishes repo.DishRepository) *DishUsecase {
	return &DishUsecase{restaurants: restaurants, dishes: dishes}
}

type CreateDishInput struct {
	RestaurantID int64
	Name         string
	Price        decimal.Decimal
	Photo        *string
	Description  string
	Options      []model.DishOption
}

// nilの項目は変更しない
type EditDishInput struct {
	DishID      int64
	Name        *string
	Price       *decimal.Decimal
	Photo       *string
	Description *string
	Options     *[]model.DishOption
}

func (u *DishUsecase) CreateDish(ctx context.Context, owner model.User, in CreateDishInput) (id int64, err error) {
	defer CatchError(&err, "Failed to create dish")

	restaurant, err := u.restaurants.FindByID(ctx, in.RestaurantID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, NotFound("Restaurant not found with given id")
	}
	if err != nil {
		return 0, err
	}
	if !OwnsRestaurant(restaurant, owner) {
		return 0, Forbidden("Only owner can add menu")
	}
	if err := validator.ValidateDish(in.Name, in.Description, in.Price, in.Options); err != nil {
		return 0, InvalidInput(err.Error())
	}

	d := model.Dish{
		Name:         strings.TrimSpace(in.Name),
		Price:        in.Price,
		Photo:        in.Photo,
		Description:  in.Description,
		RestaurantID: restaurant.ID,
		Options:      datatypes.JSONSlice[model.DishOption](in.Options),
	}
	if err := u.dishes.Create(ctx, &d); err != nil {
		return 0, err
	}
	return d.ID, nil
}

func (u *DishUsecase) EditDish(ctx context.Context, owner model.User, in EditDishInput) (err error) {
	defer CatchError(&err, "Failed to edit dish")

	if err := u.checkDish(ctx, owner, in.DishID, "Only owner can edit dish"); err != nil {
		return err
	}
	if err := validateDishPatch(in); err != nil {
		return InvalidInput(err.Error())
	}

	patch := repo.DishPatch{
		Name:        in.Name,
		Price:       in.Price,
		Photo:       in.Photo,
		Description: in.Description,
	}
	if in.Options != nil {
		opts := datatypes.JSONSlice[model.DishOption](*in.Options)
		patch.Options = &opts
	}

	err = u.dishes.Update(ctx, in.DishID, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return NotFound("Dish not found with given id")
	}
	return err
}

func (u *DishUsecase) DeleteDish(ctx context.Context, owner model.User, dishID int64) (err error) {
	defer CatchError(&err, "Failed to delete dish")

	if err := u.checkDish(ctx, owner, dishID, "Only owner can delete dish"); err != nil {
		return err
	}
	err = u.dishes.Delete(ctx, dishID)
	if errors.Is(err, repo.ErrNotFound) {
		return NotFound("Dish not found with given id")
	}
	return err
}

// メニュー取得（RestaurantもJOIN済み）→ オーナー確認
func (u *DishUsecase) checkDish(ctx context.Context, owner model.User, dishID int64, forbidden string) error {
	dish, err := u.dishes.FindByID(ctx, dishID)
	if errors.Is(err, repo.ErrNotFound) {
		return NotFound("Dish not found with given id")
	}
	if err != nil {
		return err
	}
	if dish.Restaurant == nil || !OwnsRestaurant(*dish.Restaurant, owner) {
		return Forbidden(forbidden)
	}
	return nil
}

func validateDishPatch(in EditDishInput) error {
	if in.Name != nil {
		if err := validator.ValidateDishName(*in.Name); err != nil {
			return err
		}
	}
	if in.Description != nil {
		if err := validator.ValidateDishDescription(*in.Description); err != nil {
			return err
		}
	}
	if in.Price != nil {
		if err := validator.ValidateDishPrice(*in.Price); err != nil {
			return err
		}
	}
	if in.Options != nil {
		return validator.ValidateDishOptions(*in.Options)
	}
	return nil
}

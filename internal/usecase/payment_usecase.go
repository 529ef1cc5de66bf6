package usecase

import (
	"context"
	"errors"
	"strings"

	"nubereats/internal/domain/model"
	repo "nubereats/internal/repository"
)

type PaymentUsecase struct {
	payments    repo.PaymentRepository
	restaurants repo.RestaurantRepository
}

func NewPaymentUsecase(payments repo.PaymentRepository, restaurants repo.RestaurantRepository) *PaymentUsecase {
	return &PaymentUsecase{payments: payments, restaurants: restaurants}
}

// オーナーが自分のレストランの決済を記録する
func (u *PaymentUsecase) CreatePayment(ctx context.Context, owner model.User, transactionID string, restaurantID int64) (err error) {
	defer CatchError(&err, "Failed to create payment")

	if strings.TrimSpace(transactionID) == "" {
		return InvalidInput("Transaction id is required")
	}

	restaurant, err := u.restaurants.FindByID(ctx, restaurantID)
	if errors.Is(err, repo.ErrNotFound) {
		return NotFound("Restaurant not found with given id")
	}
	if err != nil {
		return err
	}
	if !OwnsRestaurant(restaurant, owner) {
		return Forbidden("Only owner of the restaurant can create payment")
	}

	return u.payments.Create(ctx, &model.Payment{
		TransactionID: transactionID,
		UserID:        owner.ID,
		RestaurantID:  restaurant.ID,
	})
}

func (u *PaymentUsecase) GetPayments(ctx context.Context, user model.User) (items []model.Payment, err error) {
	defer CatchError(&err, "Failed to load payments")
	return u.payments.ListByUserID(ctx, user.ID)
}

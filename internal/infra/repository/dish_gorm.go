package repository

import (
	"context"
	"errors"

	"nubereats/internal/domain/model"
	repo "nubereats/internal/repository"

	"gorm.io/gorm"
)

type DishGormRepository struct {
	db *gorm.DB
}

func NewDishGormRepository(db *gorm.DB) *DishGormRepository {
	return &DishGormRepository{db: db}
}

// オーナー確認できるようにRestaurantをJOINで読む
func (r *DishGormRepository) FindByID(ctx context.Context, id int64) (model.Dish, error) {
	var d model.Dish
	err := r.db.WithContext(ctx).
		Joins("Restaurant").
		Where("dishes.id = ?", id).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Dish{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Dish{}, err
	}
	return d, nil
}

func (r *DishGormRepository) Create(ctx context.Context, d *model.Dish) error {
	return r.db.WithContext(ctx).Omit("Restaurant").Create(d).Error
}

func (r *DishGormRepository) Update(ctx context.Context, id int64, p repo.DishPatch) error {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Photo != nil {
		fields["photo"] = *p.Photo
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Options != nil {
		fields["options"] = *p.Options
	}
	return updateFields(ctx, r.db, &model.Dish{}, id, fields)
}

func (r *DishGormRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Dish{}, id)
}

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Omit("User", "Restaurant").Create(p).Error
}

func (r *PaymentGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Payment, error) {
	var items []model.Payment
	err := r.db.WithContext(ctx).
		Joins("Restaurant").
		Where("payments.user_id = ?", userID).
		Order("payments.id desc").
		Find(&items).Error
	if err != nil {
		return []model.Payment{}, err
	}
	return items, nil
}

package repository

import (
	"context"
	"errors"
	"strings"

	"nubereats/internal/domain/model"
	"nubereats/internal/infra/db"
	repo "nubereats/internal/repository"

	"gorm.io/gorm"
)

type RestaurantGormRepository struct {
	db *gorm.DB
}

// DI
func NewRestaurantGormRepository(db *gorm.DB) *RestaurantGormRepository {
	return &RestaurantGormRepository{db: db}
}

func (r *RestaurantGormRepository) FindByID(ctx context.Context, id int64) (model.Restaurant, error) {
	return r.find(r.db.WithContext(ctx).Preload("Category"), id)
}

func (r *RestaurantGormRepository) FindByIDWithMenu(ctx context.Context, id int64) (model.Restaurant, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Menu", func(tx *gorm.DB) *gorm.DB { return tx.Order("dishes.id asc") })
	return r.find(q, id)
}

func (r *RestaurantGormRepository) find(q *gorm.DB, id int64) (model.Restaurant, error) {
	var rest model.Restaurant
	err := q.Where("id = ?", id).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

// 検索/カテゴリ/ページング付きで返す。
func (r *RestaurantGormRepository) List(ctx context.Context, q repo.RestaurantListQuery) ([]model.Restaurant, int64, error) {
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Restaurant{})

	// 名前の部分一致
	if name := strings.TrimSpace(q.Name); name != "" {
		tx = tx.Where("name ILIKE ?", "%"+escapeLike(name)+"%")
	}
	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Restaurant{}, 0, err
	}

	//page/limit
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 25
	}

	var items []model.Restaurant
	if err := tx.Preload("Category").
		Order("id asc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&items).Error; err != nil {
		return []model.Restaurant{}, 0, err
	}

	return items, total, nil
}

func (r *RestaurantGormRepository) Create(ctx context.Context, rest *model.Restaurant) error {
	return r.db.WithContext(ctx).Omit("Owner", "Category", "Menu").Create(rest).Error
}

// nilでない項目だけ更新
func (r *RestaurantGormRepository) Update(ctx context.Context, id int64, p repo.RestaurantPatch) error {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Address != nil {
		fields["address"] = *p.Address
	}
	if p.CoverImg != nil {
		fields["cover_img"] = *p.CoverImg
	}
	if p.CategoryID != nil {
		fields["category_id"] = *p.CategoryID
	}
	return updateFields(ctx, r.db, &model.Restaurant{}, id, fields)
}

func (r *RestaurantGormRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Restaurant{}, id)
}

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var items []model.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Category{}, err
	}
	return items, nil
}

func (r *CategoryGormRepository) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// 同じslugが同時に作られたらErrAlreadyExists
func (r *CategoryGormRepository) Create(ctx context.Context, c *model.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return repo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *CategoryGormRepository) CountRestaurants(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Restaurant{}).
		Where("category_id = ?", categoryID).
		Count(&n).Error
	return n, err
}

// % と _ をそのまま検索できるようにする
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// 0件更新は「対象がない」
func updateFields(ctx context.Context, gdb *gorm.DB, m any, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		var n int64
		if err := gdb.WithContext(ctx).Model(m).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return repo.ErrNotFound
		}
		return nil
	}
	res := gdb.WithContext(ctx).Model(m).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, gdb *gorm.DB, m any, id int64) error {
	res := gdb.WithContext(ctx).Where("id = ?", id).Delete(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

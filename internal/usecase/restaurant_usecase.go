package usecase

import (
	"context"
	"errors"
	"strings"

	"nubereats/internal/domain/model"
	repo "nubereats/internal/repository"
	"nubereats/internal/validator"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type RestaurantUsecase struct {
	restaurants repo.RestaurantRepository
	categories  repo.CategoryRepository
}

func NewRestaurantUsecase(restaurants repo.RestaurantRepository, categories repo.CategoryRepository) *RestaurantUsecase {
	return &RestaurantUsecase{restaurants: restaurants, categories: categories}
}

type CreateRestaurantInput struct {
	Name         string
	Address      string
	CoverImg     string
	CategoryName string
}

// nilの項目は変更しない
type EditRestaurantInput struct {
	RestaurantID int64
	Name         *string
	Address      *string
	CoverImg     *string
	CategoryName *string
}

func (u *RestaurantUsecase) CreateRestaurant(ctx context.Context, owner model.User, in CreateRestaurantInput) (id int64, err error) {
	defer CatchError(&err, "Failed to create restaurant")

	if err := validator.ValidateRestaurant(in.Name, in.Address, in.CoverImg, in.CategoryName); err != nil {
		return 0, InvalidInput(err.Error())
	}

	category, err := getOrCreateCategory(ctx, u.categories, in.CategoryName)
	if err != nil {
		return 0, err
	}

	r := model.Restaurant{
		Name:       strings.TrimSpace(in.Name),
		Address:    in.Address,
		CoverImg:   in.CoverImg,
		OwnerID:    owner.ID,
		CategoryID: &category.ID,
	}
	if err := u.restaurants.Create(ctx, &r); err != nil {
		return 0, err
	}
	return r.ID, nil
}

func (u *RestaurantUsecase) EditRestaurant(ctx context.Context, owner model.User, in EditRestaurantInput) (err error) {
	defer CatchError(&err, "Failed to edit restaurant")

	if _, err := u.ownedRestaurant(ctx, owner, in.RestaurantID, "Only owner can edit restaurant"); err != nil {
		return err
	}
	if in.Name != nil {
		if err := validator.ValidateRestaurantName(*in.Name); err != nil {
			return InvalidInput(err.Error())
		}
	}

	patch := repo.RestaurantPatch{
		Name:     in.Name,
		Address:  in.Address,
		CoverImg: in.CoverImg,
	}
	if in.CategoryName != nil && strings.TrimSpace(*in.CategoryName) != "" {
		category, err := getOrCreateCategory(ctx, u.categories, *in.CategoryName)
		if err != nil {
			return err
		}
		patch.CategoryID = &category.ID
	}

	err = u.restaurants.Update(ctx, in.RestaurantID, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return NotFound("Restaurant not found with given id")
	}
	return err
}

func (u *RestaurantUsecase) DeleteRestaurant(ctx context.Context, owner model.User, restaurantID int64) (err error) {
	defer CatchError(&err, "Failed to delete restaurant")

	if _, err := u.ownedRestaurant(ctx, owner, restaurantID, "Only owner can delete restaurant"); err != nil {
		return err
	}
	err = u.restaurants.Delete(ctx, restaurantID)
	if errors.Is(err, repo.ErrNotFound) {
		return NotFound("Restaurant not found with given id")
	}
	return err
}

func (u *RestaurantUsecase) Restaurants(ctx context.Context, page PageInput) (items []model.Restaurant, info PageInfo, err error) {
	defer CatchError(&err, "Failed to load restaurants")
	return u.list(ctx, page, repo.RestaurantListQuery{})
}

// 名前の部分一致（大文字小文字を区別しない）
func (u *RestaurantUsecase) SearchRestaurant(ctx context.Context, query string, page PageInput) (items []model.Restaurant, info PageInfo, err error) {
	defer CatchError(&err, "Failed to search for restaurants")
	return u.list(ctx, page, repo.RestaurantListQuery{Name: query})
}

// メニュー込み
func (u *RestaurantUsecase) Restaurant(ctx context.Context, restaurantID int64) (r model.Restaurant, err error) {
	defer CatchError(&err, "Failed to load restaurant")

	r, err = u.restaurants.FindByIDWithMenu(ctx, restaurantID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Restaurant{}, NotFound("Restaurant not found with given id")
	}
	return r, err
}

func (u *RestaurantUsecase) list(ctx context.Context, page PageInput, q repo.RestaurantListQuery) ([]model.Restaurant, PageInfo, error) {
	page, err := page.normalize()
	if err != nil {
		return nil, PageInfo{}, err
	}
	q.Page = page.Page
	q.Limit = page.Offset

	items, total, err := u.restaurants.List(ctx, q)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return items, newPageInfo(total, page.Offset), nil
}

// 取得 → オーナー確認
func (u *RestaurantUsecase) ownedRestaurant(ctx context.Context, owner model.User, id int64, forbidden string) (model.Restaurant, error) {
	r, err := u.restaurants.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Restaurant{}, NotFound("Restaurant not found with given id")
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	if !OwnsRestaurant(r, owner) {
		return model.Restaurant{}, Forbidden(forbidden)
	}
	return r, nil
}

type CategoryUsecase struct {
	categories  repo.CategoryRepository
	restaurants repo.RestaurantRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository, restaurants repo.RestaurantRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories, restaurants: restaurants}
}

func (u *CategoryUsecase) AllCategories(ctx context.Context) (items []model.Category, err error) {
	defer CatchError(&err, "Failed to load categories")
	return u.categories.List(ctx)
}

// カテゴリなしはエラー、レストラン0件は空ページ
func (u *CategoryUsecase) Category(ctx context.Context, slug string, page PageInput) (c model.Category, items []model.Restaurant, info PageInfo, err error) {
	defer CatchError(&err, "Failed to load category")

	page, err = page.normalize()
	if err != nil {
		return model.Category{}, nil, PageInfo{}, err
	}

	c, err = u.categories.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, nil, PageInfo{}, NotFound("Category not found with given slug")
	}
	if err != nil {
		return model.Category{}, nil, PageInfo{}, err
	}

	items, total, err := u.restaurants.List(ctx, repo.RestaurantListQuery{
		Page:       page.Page,
		Limit:      page.Offset,
		CategoryID: &c.ID,
	})
	if err != nil {
		return model.Category{}, nil, PageInfo{}, err
	}
	return c, items, newPageInfo(total, page.Offset), nil
}

func (u *CategoryUsecase) RestaurantCount(ctx context.Context, categoryID int64) (n int64, err error) {
	defer CatchError(&err, "Failed to count restaurants")
	return u.categories.CountRestaurants(ctx, categoryID)
}

// " Korean BBQ " → "korean-bbq"
func Slugify(name string) string {
	lower := cases.Lower(language.Und).String(strings.TrimSpace(name))
	return strings.ReplaceAll(lower, " ", "-")
}

// slugで探して、なければ作る（同時に作られたら読み直す）
func getOrCreateCategory(ctx context.Context, categories repo.CategoryRepository, name string) (model.Category, error) {
	slug := Slugify(name)
	c, err := categories.FindBySlug(ctx, slug)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, err
	}

	c = model.Category{
		Name: cases.Lower(language.Und).String(strings.TrimSpace(name)),
		Slug: slug,
	}
	err = categories.Create(ctx, &c)
	if errors.Is(err, repo.ErrAlreadyExists) {
		return categories.FindBySlug(ctx, slug)
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

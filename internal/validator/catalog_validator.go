package validator

import (
	"errors"
	"strings"
	"unicode/utf8"

	"nubereats/internal/domain/model"

	"github.com/shopspring/decimal"
)

var (
	ErrRestaurantName   = errors.New("Restaurant name must be at least 5 characters")
	ErrRestaurantField  = errors.New("Address and cover image are required")
	ErrCategoryName     = errors.New("Category name is required")
	ErrDishName         = errors.New("Dish name must be at least 5 characters")
	ErrDishDescription  = errors.New("Dish description must be between 5 and 140 characters")
	ErrDishPrice        = errors.New("Dish price must not be negative")
	ErrDishOptionName   = errors.New("Dish option name is required")
	ErrDishOptionExtra  = errors.New("Dish option extra must not be negative")
	ErrDuplicatedOption = errors.New("Dish option names must be unique")
)

func ValidateRestaurantName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 5 {
		return ErrRestaurantName
	}
	return nil
}

func ValidateRestaurant(name, address, coverImg, categoryName string) error {
	if err := ValidateRestaurantName(name); err != nil {
		return err
	}
	if strings.TrimSpace(address) == "" || strings.TrimSpace(coverImg) == "" {
		return ErrRestaurantField
	}
	if strings.TrimSpace(categoryName) == "" {
		return ErrCategoryName
	}
	return nil
}

func ValidateDishName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 5 {
		return ErrDishName
	}
	return nil
}

func ValidateDishDescription(desc string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(desc))
	if n < 5 || n > 140 {
		return ErrDishDescription
	}
	return nil
}

func ValidateDishPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrDishPrice
	}
	return nil
}

// オプション名は重複不可（価格計算で名前で探すため）
func ValidateDishOptions(options []model.DishOption) error {
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if strings.TrimSpace(o.Name) == "" {
			return ErrDishOptionName
		}
		if _, dup := seen[o.Name]; dup {
			return ErrDuplicatedOption
		}
		seen[o.Name] = struct{}{}

		if o.Extra != nil && o.Extra.IsNegative() {
			return ErrDishOptionExtra
		}
		for _, c := range o.Choices {
			if c.Extra != nil && c.Extra.IsNegative() {
				return ErrDishOptionExtra
			}
		}
	}
	return nil
}

func ValidateDish(name, description string, price decimal.Decimal, options []model.DishOption) error {
	if err := ValidateDishName(name); err != nil {
		return err
	}
	if err := ValidateDishDescription(description); err != nil {
		return err
	}
	if err := ValidateDishPrice(price); err != nil {
		return err
	}
	return ValidateDishOptions(options)
}

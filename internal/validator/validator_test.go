package validator

import (
	"testing"

	"nubereats/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateAccount(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		role     model.Role
		want     error
	}{
		{"ok", "nico@nuber.com", "12345678", model.RoleClient, nil},
		{"empty email", "", "12345678", model.RoleClient, ErrInvalidEmail},
		{"display name is not allowed", "Nico <nico@nuber.com>", "12345678", model.RoleClient, ErrInvalidEmail},
		{"short password", "nico@nuber.com", "1234", model.RoleOwner, ErrPasswordTooWeak},
		{"unknown role", "nico@nuber.com", "12345678", model.Role("Admin"), ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateAccount(tt.email, tt.password, tt.role))
		})
	}
}

func TestValidateRestaurant(t *testing.T) {
	assert.NoError(t, ValidateRestaurant("BBQ House", "Seoul", "https://img", "Korean BBQ"))
	assert.Equal(t, ErrRestaurantName, ValidateRestaurant("BBQ", "Seoul", "https://img", "Korean BBQ"))
	assert.Equal(t, ErrRestaurantField, ValidateRestaurant("BBQ House", " ", "https://img", "Korean BBQ"))
	assert.Equal(t, ErrCategoryName, ValidateRestaurant("BBQ House", "Seoul", "https://img", ""))
}

func TestValidateDish(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	one := decimal.NewFromInt(1)

	tests := []struct {
		name    string
		dish    string
		desc    string
		price   decimal.Decimal
		options []model.DishOption
		want    error
	}{
		{"ok", "Mala Tang", "Spicy soup", decimal.NewFromInt(12), nil, nil},
		{"short name", "Tang", "Spicy soup", decimal.NewFromInt(12), nil, ErrDishName},
		{"short description", "Mala Tang", "Hot", decimal.NewFromInt(12), nil, ErrDishDescription},
		{"negative price", "Mala Tang", "Spicy soup", neg, nil, ErrDishPrice},
		{"empty option name", "Mala Tang", "Spicy soup", one, []model.DishOption{{Name: ""}}, ErrDishOptionName},
		{"duplicated option", "Mala Tang", "Spicy soup", one, []model.DishOption{{Name: "Size"}, {Name: "Size"}}, ErrDuplicatedOption},
		{"negative choice extra", "Mala Tang", "Spicy soup", one, []model.DishOption{
			{Name: "Size", Choices: []model.DishOptionChoice{{Name: "L", Extra: &neg}}},
		}, ErrDishOptionExtra},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateDish(tt.dish, tt.desc, tt.price, tt.options))
		})
	}
}

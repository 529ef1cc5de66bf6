package usecase

import (
	"nubereats/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 1行分の単価を計算する。
// 名前が一致しないオプションは無視。0でない固定extraがあれば選択肢は見ない
func ResolveDishPrice(dish model.Dish, selected []model.OrderItemOption) decimal.Decimal {
	price := dish.Price
	for _, sel := range selected {
		opt, ok := findDishOption(dish.Options, sel.Name)
		if !ok {
			continue
		}
		if opt.Extra != nil && !opt.Extra.IsZero() {
			price = price.Add(*opt.Extra)
			continue
		}
		if sel.Choice == nil {
			continue
		}
		for _, c := range opt.Choices {
			if c.Name == *sel.Choice {
				if c.Extra != nil {
					price = price.Add(*c.Extra)
				}
				break
			}
		}
	}
	return price
}

func findDishOption(options []model.DishOption, name string) (model.DishOption, bool) {
	for _, o := range options {
		if o.Name == name {
			return o, true
		}
	}
	return model.DishOption{}, false
}

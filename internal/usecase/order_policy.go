package usecase

import (
	"slices"

	"nubereats/internal/domain/model"
)

// ロールごとに設定できるステータス（Clientは変更不可）
var settableStatuses = map[model.Role][]model.OrderStatus{
	model.RoleOwner:    {model.OrderStatusCooking, model.OrderStatusCooked},
	model.RoleDelivery: {model.OrderStatusPickedUp, model.OrderStatusDelivered},
}

// 注文の客・配達員・レストランのオーナーだけが見られる。
// オーナーIDはorder.Restaurantから読む（注文と一緒にJOINで取得済み）
func CanSeeOrder(order model.Order, user model.User) bool {
	if order.CustomerID != nil && *order.CustomerID == user.ID {
		return true
	}
	if order.DriverID != nil && *order.DriverID == user.ID {
		return true
	}
	if owner := order.OwnerID(); owner != nil && *owner == user.ID {
		return true
	}
	return false
}

func OwnsRestaurant(r model.Restaurant, user model.User) bool {
	return r.OwnerID == user.ID
}

// StrictFlow=falseならPending→Cookedのような飛ばしも許す
type OrderPolicy struct {
	StrictFlow bool
}

func (p OrderPolicy) CanChangeStatus(role model.Role, from, to model.OrderStatus) bool {
	if !slices.Contains(settableStatuses[role], to) {
		return false
	}
	if p.StrictFlow {
		return to.IsNextOf(from)
	}
	return true
}

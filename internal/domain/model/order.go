package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCooking   OrderStatus = "Cooking"
	OrderStatusCooked    OrderStatus = "Cooked"
	OrderStatusPickedUp  OrderStatus = "PickedUp"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// Pending → Cooking → Cooked → PickedUp → Delivered
var orderStatusFlow = []OrderStatus{
	OrderStatusPending,
	OrderStatusCooking,
	OrderStatusCooked,
	OrderStatusPickedUp,
	OrderStatusDelivered,
}

func (s OrderStatus) Valid() bool {
	return s.step() >= 0
}

// 直後のステータスならtrue
func (s OrderStatus) IsNextOf(cur OrderStatus) bool {
	i := cur.step()
	return i >= 0 && s.step() == i+1
}

func (s OrderStatus) step() int {
	for i, st := range orderStatusFlow {
		if st == s {
			return i
		}
	}
	return -1
}

type Order struct {
	ID           int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID   *int64           `gorm:"index" json:"customer_id"`
	Customer     *User            `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`
	DriverID     *int64           `gorm:"index" json:"driver_id"`
	Driver       *User            `gorm:"foreignKey:DriverID;constraint:OnDelete:SET NULL" json:"driver,omitempty"`
	RestaurantID *int64           `gorm:"index" json:"restaurant_id"`
	Restaurant   *Restaurant      `gorm:"foreignKey:RestaurantID;constraint:OnDelete:SET NULL" json:"restaurant,omitempty"`
	Items        []OrderItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total        *decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`
	Status       OrderStatus      `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	CreatedAt    time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// レストランのオーナーID（Restaurantを一緒に読んだ時だけ入る）
func (o Order) OwnerID() *int64 {
	if o.Restaurant == nil {
		return nil
	}
	id := o.Restaurant.OwnerID
	return &id
}

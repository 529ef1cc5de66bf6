package model

import (
	"time"

	"gorm.io/datatypes"
)

// 注文時に選んだオプション（Choiceは選択肢型のときだけ）
type OrderItemOption struct {
	Name   string  `json:"name"`
	Choice *string `json:"choice,omitempty"`
}

// 注文明細（1行 = 1個）
type OrderItem struct {
	ID        int64                                `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64                                `gorm:"not null;index" json:"order_id"`
	DishID    *int64                               `gorm:"index" json:"dish_id"`
	Dish      *Dish                                `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE" json:"dish,omitempty"`
	Options   datatypes.JSONSlice[OrderItemOption] `gorm:"type:json" json:"options"`
	CreatedAt time.Time                            `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                            `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CoverImg  *string   `gorm:"type:text" json:"cover_img"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type Restaurant struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Address    string    `gorm:"type:varchar(255);not null" json:"address"`
	CoverImg   string    `gorm:"type:text;not null" json:"cover_img"`
	OwnerID    int64     `gorm:"not null;index" json:"owner_id"`
	Owner      *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CategoryID *int64    `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Menu       []Dish    `gorm:"foreignKey:RestaurantID" json:"-"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 選択肢（例: 辛さ「大辛」）
type DishOptionChoice struct {
	Name  string           `json:"name"`
	Extra *decimal.Decimal `json:"extra,omitempty"`
}

// メニューのカスタマイズ軸。Extraがあれば固定加算、なければChoicesから選ぶ
type DishOption struct {
	Name    string             `json:"name"`
	Choices []DishOptionChoice `json:"choices,omitempty"`
	Extra   *decimal.Decimal   `json:"extra,omitempty"`
}

type Dish struct {
	ID           int64                          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string                         `gorm:"type:varchar(255);not null" json:"name"`
	Price        decimal.Decimal                `gorm:"type:numeric(12,2);not null" json:"price"`
	Photo        *string                        `gorm:"type:text" json:"photo"`
	Description  string                         `gorm:"type:varchar(140);not null" json:"description"`
	RestaurantID int64                          `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   *Restaurant                    `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	Options      datatypes.JSONSlice[DishOption] `gorm:"type:json" json:"options"`
	CreatedAt    time.Time                      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 決済記録（オーナーがレストランのプロモーション代金を払った記録）
type Payment struct {
	ID            int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionID string      `gorm:"type:varchar(255);not null" json:"transaction_id"`
	UserID        int64       `gorm:"not null;index" json:"user_id"`
	User          *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RestaurantID  int64       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant    *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

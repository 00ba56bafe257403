package types

import (
	"time"
)

// CartItem holds quantity only, never a price snapshot: summaries are
// always priced from the live product row.
type CartItem struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(24);not null;index;uniqueIndex:idx_cart_user_product" json:"userId"`
	ProductID string    `gorm:"type:char(24);not null;uniqueIndex:idx_cart_user_product" json:"productId"`
	Quantity  int       `gorm:"not null;column:quantity" json:"quantity"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (CartItem) TableName() string {
	return "cart_item"
}

// CartEntry is a cart line joined with its live product for summary
// views. It is never persisted.
type CartEntry struct {
	ID       string   `json:"id"`
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
	Subtotal float64  `json:"subtotal"`
}

type CartSummary struct {
	Items []*CartEntry `json:"items"`
	Count int          `json:"count"`
	Total float64      `json:"total"`
}

func EmptyCartSummary() *CartSummary {
	return &CartSummary{Items: []*CartEntry{}}
}

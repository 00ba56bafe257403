package types

import (
	"time"
)

type WishlistItem struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(24);not null;index;uniqueIndex:idx_wishlist_user_product" json:"userId"`
	ProductID string    `gorm:"type:char(24);not null;uniqueIndex:idx_wishlist_user_product" json:"productId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (WishlistItem) TableName() string {
	return "wishlist_item"
}

// WishlistEntry joins a wishlist row with its live product. Not persisted.
type WishlistEntry struct {
	ID      string   `json:"id"`
	Product *Product `json:"product"`
	AddedAt time.Time `json:"addedAt"`
}

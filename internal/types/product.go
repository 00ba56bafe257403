package types

import (
	"time"
)

type Product struct {
	ID          string    `gorm:"type:char(24);primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Category    string    `gorm:"not null;index;column:category" json:"category"`
	Type        string    `gorm:"not null;index;column:type" json:"type"`
	Brand       *string   `gorm:"column:brand" json:"brand,omitempty"`
	SKU         *string   `gorm:"uniqueIndex;column:sku" json:"sku,omitempty"`
	Price       float64   `gorm:"not null;column:price" json:"price"`
	OldPrice    *float64  `gorm:"column:old_price" json:"oldPrice,omitempty"`
	Rating      float64   `gorm:"not null;default:0;column:rating" json:"rating"`
	Badge       *string   `gorm:"column:badge" json:"badge,omitempty"`
	Image       string    `gorm:"column:image" json:"image"`
	Description string    `gorm:"column:description" json:"description"`
	Stock       int       `gorm:"not null;default:0;column:stock" json:"stock"`
	IsActive    bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (Product) TableName() string {
	return "product"
}

// ProductFilter is the normalized query for catalog listing.
type ProductFilter struct {
	Search   string
	Type     string
	Category string
	// Active is "true", "false" or "all".
	Active string
	Sort   string
	Page   int
	Limit  int
}

type ProductPage struct {
	Items []*Product `json:"items"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int64      `json:"total"`
	Pages int64      `json:"pages"`
}

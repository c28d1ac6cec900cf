package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item. It belongs to any number of categories and owns its images.
type Product struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"size:255;uniqueIndex;not null"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	ViewCount     int             `gorm:"not null;default:0"`
	ThumbnailPath *string         `gorm:"size:512"`
	Categories    []Category      `gorm:"many2many:product_categories;"`
	Images        []ProductImage  `gorm:"foreignKey:ProductID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductImage is one uploaded image of a product, in upload order.
type ProductImage struct {
	ID            uint    `gorm:"primaryKey"`
	ProductID     uint    `gorm:"index;not null"`
	ImagePath     string  `gorm:"size:512;not null"`
	ThumbnailPath *string `gorm:"size:512"`
	CreatedAt     time.Time
}

// ProductInput carries the client-writable fields of a Product.
// CategoryIDs naming no existing category are dropped.
type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CategoryIDs   []uint
}

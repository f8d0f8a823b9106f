package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item represents a laptop offered in the store.
type Item struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title         string          `json:"title" gorm:"type:varchar(100);index;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null;default:0"`
	CategoryID    string          `json:"category_id" gorm:"type:varchar(36);index;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"` // soft delete keeps order lines resolvable
}

// ItemChanges lists the mutable fields of an Item. Nil fields are left untouched.
type ItemChanges struct {
	Title         *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
	CategoryID    *string
}

// Apply copies the set fields onto the item and reports whether anything changed.
func (ch ItemChanges) Apply(item *Item) bool {
	changed := false
	if ch.Title != nil && *ch.Title != item.Title {
		item.Title = *ch.Title
		changed = true
	}
	if ch.Description != nil && *ch.Description != item.Description {
		item.Description = *ch.Description
		changed = true
	}
	if ch.Price != nil && !ch.Price.Equal(item.Price) {
		item.Price = *ch.Price
		changed = true
	}
	if ch.StockQuantity != nil && *ch.StockQuantity != item.StockQuantity {
		item.StockQuantity = *ch.StockQuantity
		changed = true
	}
	if ch.CategoryID != nil && *ch.CategoryID != item.CategoryID {
		item.CategoryID = *ch.CategoryID
		changed = true
	}
	return changed
}

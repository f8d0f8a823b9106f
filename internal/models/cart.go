package models

import "time"

// CartEntry records that a user intends to buy Quantity of an item.
// A user holds at most one entry per item; adding the same item again
// increments Quantity.
type CartEntry struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;index:idx_cart_user_item"`
	ItemID    string    `json:"item_id" gorm:"type:varchar(36);not null;index:idx_cart_user_item"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one line of a receipt: a menu item, a quantity, and the line
// price. UnitPrice is snapshotted from the menu at insert time and every
// recompute derives Price = UnitPrice * Quantity, so later menu price edits
// or repeated decrements never drift the line total.
type OrderItem struct {
	ReceiptID  uint            `gorm:"primaryKey;autoIncrement:false" json:"receipt_id"`
	MenuItemID uint            `gorm:"primaryKey;autoIncrement:false" json:"menu_item_id"`
	MenuItem   *MenuItem       `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity   int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

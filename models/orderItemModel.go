package models

import (
	"time"
)

// OrderItem is one line of an order. Price is copied from the menu item
// when the order is placed, so later menu price changes never alter
// historical totals. MenuItemID is nullable: it is cleared when the menu
// item is deleted.
type OrderItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	Price      float64   `json:"price" gorm:"not null"`
	OrderID    uint      `json:"orderId" gorm:"not null;index"`
	MenuItemID *uint     `json:"menuItemId" gorm:"index"`
	MenuItem   *MenuItem `json:"menuItem,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Amount is this line's contribution to the order total.
func (i *OrderItem) Amount() float64 {
	return i.Price * float64(i.Quantity)
}

package models

import (
	"time"
)

// MenuItem is a dish on the menu. OrderItems reference it weakly: deleting
// a menu item clears the reference on historical order items instead of
// deleting them, since the price was copied at order time.
type MenuItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	ImagePath   *string   `json:"imagePath"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

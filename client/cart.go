package client

import (
	"sync"

	"go-restaurant-backoffice/models"
)

type CartItem struct {
	MenuItem models.MenuItem
	Quantity int
}

// Cart is the staff-side order draft. Totals are recomputed from the item
// list on every read; nothing is persisted until the order is submitted.
type Cart struct {
	mu          sync.Mutex
	items       []CartItem
	orderType   models.OrderType
	deliveryFee float64
}

func NewCart() *Cart {
	return &Cart{orderType: models.TypeDelivery}
}

// Add merges by menu item id, bumping the quantity when already present.
func (c *Cart) Add(menuItem models.MenuItem, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].MenuItem.ID == menuItem.ID {
			c.items[i].Quantity += quantity
			return
		}
	}
	c.items = append(c.items, CartItem{MenuItem: menuItem, Quantity: quantity})
}

func (c *Cart) Remove(menuItemID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].MenuItem.ID == menuItemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity; zero or less removes the item.
func (c *Cart) SetQuantity(menuItemID uint, quantity int) {
	if quantity <= 0 {
		c.Remove(menuItemID)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].MenuItem.ID == menuItemID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) SetType(orderType models.OrderType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orderType = orderType
}

func (c *Cart) SetDeliveryFee(fee float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deliveryFee = fee
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartItem(nil), c.items...)
}

// Subtotal is the item sum without the delivery fee.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	sum := 0.0
	for _, item := range c.items {
		sum += item.MenuItem.Price * float64(item.Quantity)
	}
	return models.ToFixed(sum, 2)
}

// Total adds the delivery fee for delivery carts.
func (c *Cart) Total() float64 {
	subtotal := c.Subtotal()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.orderType == models.TypeDelivery {
		subtotal += c.deliveryFee
	}
	return models.ToFixed(subtotal, 2)
}

// OrderItems converts the cart into order line items, copying each menu
// item's current price.
func (c *Cart) OrderItems() []models.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	orderItems := make([]models.OrderItem, 0, len(c.items))
	for _, item := range c.items {
		menuItemID := item.MenuItem.ID
		orderItems = append(orderItems, models.OrderItem{
			Quantity:   item.Quantity,
			Price:      item.MenuItem.Price,
			MenuItemID: &menuItemID,
		})
	}
	return orderItems
}

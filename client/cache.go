// Package client is the subscriber side of the notification channel: a
// local cache of menu items and orders kept in sync by applying events, a
// reconnecting WebSocket subscriber, and a cart.
package client

import (
	"encoding/json"
	"fmt"
	"sync"

	"go-restaurant-backoffice/models"
)

// Cache mirrors the server's menu-item and order lists. Apply methods are
// idempotent with respect to echo events: a created event for an entity
// that is already present replaces it instead of appending a duplicate.
type Cache struct {
	mu        sync.RWMutex
	menuItems []models.MenuItem
	orders    []models.Order
}

func NewCache() *Cache {
	return &Cache{}
}

// ReplaceMenuItems resets the menu list, used after (re)connecting when the
// full state is re-fetched.
func (c *Cache) ReplaceMenuItems(menuItems []models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.menuItems = append([]models.MenuItem(nil), menuItems...)
}

// ReplaceOrders resets the order list.
func (c *Cache) ReplaceOrders(orders []models.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders = append([]models.Order(nil), orders...)
}

// ApplyMenuItemEvent folds one menu-item event into the cache.
func (c *Cache) ApplyMenuItemEvent(event string, payload json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event {
	case "menuItem:created", "menuItem:updated":
		var menuItem models.MenuItem
		if err := json.Unmarshal(payload, &menuItem); err != nil {
			return fmt.Errorf("decoding %s payload: %w", event, err)
		}
		c.menuItems = upsertMenuItem(c.menuItems, menuItem)
	case "menuItem:deleted":
		var deleted struct {
			ID uint `json:"id"`
		}
		if err := json.Unmarshal(payload, &deleted); err != nil {
			return fmt.Errorf("decoding %s payload: %w", event, err)
		}
		c.menuItems = deleteMenuItem(c.menuItems, deleted.ID)
	default:
		return fmt.Errorf("unknown menu item event %q", event)
	}
	return nil
}

// ApplyOrderEvent folds one order event into the cache.
func (c *Cache) ApplyOrderEvent(event string, payload json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event {
	case "order:created", "order:updated":
		var order models.Order
		if err := json.Unmarshal(payload, &order); err != nil {
			return fmt.Errorf("decoding %s payload: %w", event, err)
		}
		c.orders = upsertOrder(c.orders, order)
	case "order:deleted":
		var deleted struct {
			ID uint `json:"id"`
		}
		if err := json.Unmarshal(payload, &deleted); err != nil {
			return fmt.Errorf("decoding %s payload: %w", event, err)
		}
		c.orders = deleteOrder(c.orders, deleted.ID)
	default:
		return fmt.Errorf("unknown order event %q", event)
	}
	return nil
}

// MenuItems returns a copy of the cached menu list.
func (c *Cache) MenuItems() []models.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.MenuItem(nil), c.menuItems...)
}

// Orders returns a copy of the cached order list.
func (c *Cache) Orders() []models.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Order(nil), c.orders...)
}

func upsertMenuItem(menuItems []models.MenuItem, menuItem models.MenuItem) []models.MenuItem {
	for i := range menuItems {
		if menuItems[i].ID == menuItem.ID {
			menuItems[i] = menuItem
			return menuItems
		}
	}
	return append(menuItems, menuItem)
}

func deleteMenuItem(menuItems []models.MenuItem, id uint) []models.MenuItem {
	for i := range menuItems {
		if menuItems[i].ID == id {
			return append(menuItems[:i], menuItems[i+1:]...)
		}
	}
	return menuItems
}

func upsertOrder(orders []models.Order, order models.Order) []models.Order {
	for i := range orders {
		if orders[i].ID == order.ID {
			orders[i] = order
			return orders
		}
	}
	return append(orders, order)
}

func deleteOrder(orders []models.Order, id uint) []models.Order {
	for i := range orders {
		if orders[i].ID == id {
			return append(orders[:i], orders[i+1:]...)
		}
	}
	return orders
}

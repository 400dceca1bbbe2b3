package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-restaurant-backoffice/models"
	"go-restaurant-backoffice/ws"
)

type OrderItemRequest struct {
	MenuItemID uint    `json:"menuItemId" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,gte=1"`
	Price      float64 `json:"price" validate:"gte=0"`
}

type CreateOrderRequest struct {
	Customer      string             `json:"customer" validate:"required"`
	Address       string             `json:"address" validate:"required"`
	Type          *models.OrderType  `json:"type"`
	PromotionCode *string            `json:"promotionCode"`
	DeliveryFee   float64            `json:"deliveryFee" validate:"gte=0"`
	UserID        *uint              `json:"userId"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	Customer      *string             `json:"customer"`
	Address       *string             `json:"address"`
	Status        *models.OrderStatus `json:"status"`
	Type          *models.OrderType   `json:"type"`
	PromotionCode *string             `json:"promotionCode"`
	DeliveryFee   *float64            `json:"deliveryFee" validate:"omitempty,gte=0"`
}

func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		query := db.Preload("OrderItems.MenuItem")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var order models.Order
		if err := db.Preload("OrderItems.MenuItem").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func GetOrdersByUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseID(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var orders []models.Order
		if err := db.Preload("OrderItems.MenuItem").
			Where("user_id = ?", userID).
			Order("created_at desc").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// CreateOrder persists a new order and all of its line items as one atomic
// unit. The order always starts Pending regardless of what the client
// sends, and the total is derived from the items plus the delivery fee.
func CreateOrder(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		orderType := models.TypeDelivery
		if req.Type != nil {
			if !req.Type.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order type"})
				return
			}
			orderType = *req.Type
		}

		order := models.Order{
			Customer:      req.Customer,
			Address:       req.Address,
			Status:        models.StatusPending,
			Type:          orderType,
			DeliveryFee:   req.DeliveryFee,
			PromotionCode: req.PromotionCode,
			UserID:        req.UserID,
			Time:          time.Now(),
		}
		for _, item := range req.Items {
			menuItemID := item.MenuItemID
			order.OrderItems = append(order.OrderItems, models.OrderItem{
				Quantity:   item.Quantity,
				Price:      item.Price,
				MenuItemID: &menuItemID,
			})
		}
		order.Total = order.ComputeTotal()

		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&order).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}

		created, err := loadOrder(db, order.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		hub.Publish("order:created", created)
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateOrder merges the provided fields. Status changes go through the
// lifecycle state machine: only the next pipeline stage or Cancelled is
// accepted from a non-terminal status, and terminal orders are closed.
func UpdateOrder(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("OrderItems").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		if req.Status != nil && *req.Status != order.Status {
			if !req.Status.Valid() || !models.CanTransition(order.Status, *req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "invalid status transition",
					"from":  order.Status,
					"to":    *req.Status,
				})
				return
			}
			order.Status = *req.Status
		}
		if req.Customer != nil {
			order.Customer = *req.Customer
		}
		if req.Address != nil {
			order.Address = *req.Address
		}
		if req.Type != nil {
			if !req.Type.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order type"})
				return
			}
			order.Type = *req.Type
		}
		if req.PromotionCode != nil {
			order.PromotionCode = req.PromotionCode
		}
		if req.DeliveryFee != nil {
			order.DeliveryFee = *req.DeliveryFee
		}
		// Type or fee changes move the delivery fee in or out of the total.
		order.Total = order.ComputeTotal()

		if err := db.Omit("OrderItems").Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}

		updated, err := loadOrder(db, order.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		hub.Publish("order:updated", updated)
		c.JSON(http.StatusOK, updated)
	}
}

// AddItemsToOrder appends line items and bumps the total by their sum,
// atomically with the item inserts.
func AddItemsToOrder(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var items []OrderItemRequest
		if err := c.ShouldBindJSON(&items); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no items provided"})
			return
		}
		for _, item := range items {
			if err := validate.Struct(&item); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		var notFound bool
		err = db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.First(&order, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					notFound = true
				}
				return err
			}

			additional := 0.0
			for _, item := range items {
				menuItemID := item.MenuItemID
				orderItem := models.OrderItem{
					Quantity:   item.Quantity,
					Price:      item.Price,
					OrderID:    order.ID,
					MenuItemID: &menuItemID,
				}
				if err := tx.Create(&orderItem).Error; err != nil {
					return err
				}
				additional += orderItem.Amount()
			}

			return tx.Model(&order).
				Update("total", models.ToFixed(order.Total+additional, 2)).Error
		})
		if err != nil {
			if notFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "adding items failed"})
			return
		}

		updated, err := loadOrder(db, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		hub.Publish("order:updated", updated)
		c.JSON(http.StatusOK, updated)
	}
}

// RemoveItemFromOrder deletes one line item and subtracts its contribution
// from the total, atomically. The order itself survives even when its last
// item is removed.
func RemoveItemFromOrder(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}
		itemID, err := parseID(c.Param("itemId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}

		var notFound bool
		err = db.Transaction(func(tx *gorm.DB) error {
			var orderItem models.OrderItem
			if err := tx.Where("id = ? AND order_id = ?", itemID, orderID).
				First(&orderItem).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					notFound = true
				}
				return err
			}

			var order models.Order
			if err := tx.First(&order, orderID).Error; err != nil {
				return err
			}

			if err := tx.Delete(&models.OrderItem{}, orderItem.ID).Error; err != nil {
				return err
			}

			return tx.Model(&order).
				Update("total", models.ToFixed(order.Total-orderItem.Amount(), 2)).Error
		})
		if err != nil {
			if notFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "removing item failed"})
			return
		}

		updated, err := loadOrder(db, orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		hub.Publish("order:updated", updated)
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteOrder removes an order and all of its line items.
func DeleteOrder(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var order models.Order
		if err := db.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Order{}, order.ID).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order delete failed"})
			return
		}

		hub.Publish("order:deleted", ws.DeletedPayload{ID: order.ID})
		c.Status(http.StatusNoContent)
	}
}

func loadOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("OrderItems.MenuItem").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	controller "go-restaurant-backoffice/controllers"
	"go-restaurant-backoffice/ws"
)

func OrderRoutes(incomingRoutes *gin.Engine, db *gorm.DB, hub *ws.Hub) {
	incomingRoutes.GET("/orders", controller.GetOrders(db))
	incomingRoutes.GET("/orders/:id", controller.GetOrder(db))
	incomingRoutes.GET("/orders/user/:userId", controller.GetOrdersByUser(db))
	incomingRoutes.POST("/orders", controller.CreateOrder(db, hub))
	incomingRoutes.PUT("/orders/:id", controller.UpdateOrder(db, hub))
	incomingRoutes.DELETE("/orders/:id", controller.DeleteOrder(db, hub))
	incomingRoutes.POST("/orders/:id/items", controller.AddItemsToOrder(db, hub))
	incomingRoutes.DELETE("/orders/:id/items/:itemId", controller.RemoveItemFromOrder(db, hub))
}

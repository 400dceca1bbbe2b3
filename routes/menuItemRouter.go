package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-restaurant-backoffice/config"
	controller "go-restaurant-backoffice/controllers"
	"go-restaurant-backoffice/ws"
)

func MenuItemRoutes(incomingRoutes *gin.Engine, db *gorm.DB, hub *ws.Hub, upload config.UploadConfig) {
	incomingRoutes.GET("/menu-items", controller.GetMenuItems(db))
	incomingRoutes.GET("/menu-items/popular", controller.GetPopularMenuItems(db))
	incomingRoutes.GET("/menu-items/:id", controller.GetMenuItem(db))
	incomingRoutes.GET("/menu-items/image/:id", controller.GetMenuItemImage(db, upload))
	incomingRoutes.POST("/menu-items", controller.CreateMenuItem(db, hub))
	incomingRoutes.POST("/menu-items/upload", controller.CreateMenuItemWithImage(db, hub, upload))
	incomingRoutes.PUT("/menu-items/:id", controller.UpdateMenuItem(db, hub))
	incomingRoutes.PUT("/menu-items/:id/upload", controller.UpdateMenuItemWithImage(db, hub, upload))
	incomingRoutes.DELETE("/menu-items/:id", controller.DeleteMenuItem(db, hub))
}

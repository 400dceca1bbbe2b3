package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	controller "go-restaurant-backoffice/controllers"
)

func DashboardRoutes(incomingRoutes *gin.Engine, db *gorm.DB) {
	incomingRoutes.GET("/dashboard/metrics", controller.GetDashboardMetrics(db))
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-restaurant-backoffice/models"
	"go-restaurant-backoffice/stats"
)

// GetDashboardMetrics serves the server-side aggregation so clients do not
// have to pull the full order list just to render the dashboard.
func GetDashboardMetrics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, stats.Summarize(orders, time.Now()))
	}
}

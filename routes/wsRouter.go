package routes

import (
	"github.com/gin-gonic/gin"

	"go-restaurant-backoffice/ws"
)

// WsRoutes exposes one subscription endpoint per entity type, so menu and
// order traffic stay on independent channels.
func WsRoutes(incomingRoutes *gin.Engine, menuItemHub, orderHub *ws.Hub) {
	incomingRoutes.GET("/ws/menu-items", menuItemHub.Handle())
	incomingRoutes.GET("/ws/orders", orderHub.Handle())
}

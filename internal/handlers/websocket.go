package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ridebuddy/ridebuddy-backend/internal/services"
)

// WebSocketHandler handles WebSocket connections
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		isDriver := c.GetBool("isDriver")

		services.HandleWebSocket(hub, c.Writer, c.Request, userID, isDriver)
	}
}

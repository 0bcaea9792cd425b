package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/roomhub/internal/handlers"
)

func APIEndpoints(r *gin.Engine, roomH *handlers.RoomHandler, wsH *handlers.WebSocketHandler) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "roomhub server is running")
	})

	// Room directory
	r.GET("/rooms", roomH.ListRooms)
	r.POST("/rooms", roomH.CreateRoom)
	r.POST("/join", roomH.PreflightJoin)

	// Real-time event channel
	r.GET("/ws", wsH.HandleWebSocket)
}

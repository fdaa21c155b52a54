package realtime

import "github.com/gin-gonic/gin"

// RealtimeRoutes mounts the websocket endpoint and starts the hub loop.
func RealtimeRoutes(router *gin.Engine) *Hub {
	hub := NewHub()
	go hub.Run()

	router.GET("/ws", ServeWS(hub))
	return hub
}

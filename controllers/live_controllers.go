package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-booking/live"
	"github.com/yeremiapane/restaurant-booking/metrics"
	"github.com/yeremiapane/restaurant-booking/middlewares"
	"github.com/yeremiapane/restaurant-booking/utils"
)

type LiveController struct {
	Hub      *live.Hub
	upgrader websocket.Upgrader
}

// NewLiveController only accepts websocket handshakes from allowedOrigins.
func NewLiveController(hub *live.Hub, allowedOrigins []string) *LiveController {
	return &LiveController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return middlewares.OriginAllowed(allowedOrigins, r.Header.Get("Origin"))
			},
		},
	}
}

// BookingsFeed -> endpoint WebSocket untuk event booking
func (lc *LiveController) BookingsFeed(c *gin.Context) {
	ws, err := lc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed for %s: %v", c.ClientIP(), err)
		return
	}

	lc.Hub.RegisterClient(ws, c.ClientIP())
	metrics.LiveClients.Inc()
	defer metrics.LiveClients.Dec()

	// Baca pesan sampai client menutup koneksi
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	lc.Hub.UnregisterClient(ws)
}

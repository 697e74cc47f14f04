package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/xgrece/bodegon/kds"
	"github.com/xgrece/bodegon/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // display screens are served from other hosts on the LAN
	},
}

type FeedController struct {
	Hub *kds.Hub
}

func NewFeedController(hub *kds.Hub) *FeedController {
	return &FeedController{Hub: hub}
}

// Subscribe upgrades the request to a websocket that receives the record events of
// the :screen channel until the client disconnects.
func (fc *FeedController) Subscribe(c *gin.Context) {
	screen := c.Param("screen")
	if !kds.ValidScreen(screen) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("pantalla desconocida: %s", screen))
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("kds: upgrade failed")
		return
	}

	fc.Hub.Register(ws, screen)
	utils.InfoLogger.Printf("Screen %s connected from %s", screen, c.ClientIP())

	// Screens only listen; reading detects the disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	fc.Hub.Unregister(ws)
}

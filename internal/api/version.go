package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/190dpa/chatyni-rpg/internal/broadcast"
	"github.com/190dpa/chatyni-rpg/internal/constants"
)

// Version reports the backend version.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": constants.Version})
}

// WebSocket upgrades an authenticated request and parks it on the hub
// until the client disconnects.
func WebSocket(hub *broadcast.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = hub.Attach(currentUsername(c), c.Writer, c.Request)
	}
}

package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat lets load balancers and uptime checks see if the server is
// alive
func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

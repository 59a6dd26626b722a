package middleware

import (
	"bitwise74/account-api/pkg/respond"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func BodySizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Fast reject for legit requests
		if c.Request.ContentLength > maxBytes {
			respond.Fail(c, http.StatusBadRequest, "Request body size exceeds limit")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()

		if c.Errors.Last() != nil {
			if strings.Contains(c.Errors.Last().Error(), "http: request body too large") {
				respond.Fail(c, http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
			}
			return
		}
	}
}

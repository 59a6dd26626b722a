// Package respond defines the uniform response envelope every handler
// and middleware writes. Failures never carry internal error detail,
// those only go to the logs
package respond

import "github.com/gin-gonic/gin"

// Fail writes the error envelope and aborts the request. The requestID
// is attached so users can reference failures in support requests
func Fail(c *gin.Context, status int, message string) {
	requestID, _ := c.Get("requestID")

	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"message":    message,
		"statusCode": status,
		"requestID":  requestID,
	})
}

// OK writes a success envelope merged with the handler's own fields
func OK(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}

	c.JSON(status, body)
}

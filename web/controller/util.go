package controller

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// jsonError sends the API's uniform failure shape.
func jsonError(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, gin.H{"error": msg})
}

// jsonValidationError reports a rejected request body along with the binding
// details.
func jsonValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Validation error",
		"details": err.Error(),
	})
}

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

package handlers

import (
	"net/http"
	"strings"

	"lumirum/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userId"
	deviceKey = "device"

	// Header names the firmware sends on every request.
	apiKeyHeader   = "x-api-key"
	firmwareHeader = "x-firmware-version"
)

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(userIDKey, userId)
	c.Next()
}

// deviceKeyMiddleware authenticates hardware by its secret key and records
// the check-in, including the firmware version when the device reports one.
func (h *Handler) deviceKeyMiddleware(c *gin.Context) {
	key := c.GetHeader(apiKeyHeader)
	if key == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing " + apiKeyHeader + " header",
		})
		return
	}

	var firmware *string
	if fw := strings.TrimSpace(c.GetHeader(firmwareHeader)); fw != "" {
		firmware = &fw
	}

	device, err := h.services.AuthenticateByKey(c.Request.Context(), key, firmware)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid device key",
		})
		return
	}

	c.Set(deviceKey, device)
	c.Next()
}

// userIDFromCtx pulls the authenticated user id set by userIdMiddleware.
func userIDFromCtx(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// deviceFromCtx pulls the authenticated device set by deviceKeyMiddleware.
func deviceFromCtx(c *gin.Context) (models.Device, bool) {
	v, ok := c.Get(deviceKey)
	if !ok {
		return models.Device{}, false
	}
	d, ok := v.(models.Device)
	return d, ok
}

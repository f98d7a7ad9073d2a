package handlers

import (
	"net/http"

	"lumirum/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Register device
// @Description  Returns the device with its secret key. The key is flashed onto hardware.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        body  body  service.DeviceInput  true  "Device"
// @Success      200   {object}  models.Device
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/devices [post]
// @Security     BearerAuth
func (h *Handler) createDevice(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input service.DeviceInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	device, err := h.services.Devices.Create(c.Request.Context(), userID, input)
	if err != nil {
		h.respondServiceError(c, "device_create_failed", err)
		return
	}

	c.JSON(http.StatusOK, device)
}

// @Summary      List devices
// @Tags         devices
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, devices"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/devices [get]
// @Security     BearerAuth
func (h *Handler) listDevices(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	devices, err := h.services.Devices.List(c.Request.Context(), userID)
	if err != nil {
		h.respondServiceError(c, "device_list_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(devices),
		"devices": devices,
	})
}

// @Summary      Get device
// @Tags         devices
// @Produce      json
// @Param        id  path  int  true  "Device ID"
// @Success      200  {object}  models.Device
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/devices/{id} [get]
// @Security     BearerAuth
func (h *Handler) getDevice(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	device, err := h.services.Devices.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.respondServiceError(c, "device_get_failed", err)
		return
	}

	c.JSON(http.StatusOK, device)
}

// @Summary      Update device
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "Device ID"
// @Param        body  body  service.DeviceInput  true  "Device"
// @Success      200   {object}  models.Device
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/devices/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateDevice(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.DeviceInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	device, err := h.services.Devices.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		h.respondServiceError(c, "device_update_failed", err)
		return
	}

	c.JSON(http.StatusOK, device)
}

// @Summary      Delete device
// @Tags         devices
// @Produce      json
// @Param        id  path  int  true  "Device ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/devices/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteDevice(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Devices.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondServiceError(c, "device_delete_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Rotate device key
// @Description  Generates a new secret key. The old key stops working immediately.
// @Tags         devices
// @Produce      json
// @Param        id  path  int  true  "Device ID"
// @Success      200  {object}  models.Device
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/devices/{id}/key [post]
// @Security     BearerAuth
func (h *Handler) regenerateDeviceKey(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	device, err := h.services.Devices.RegenerateKey(c.Request.Context(), userID, id)
	if err != nil {
		h.respondServiceError(c, "device_regenerate_key_failed", err)
		return
	}

	c.JSON(http.StatusOK, device)
}

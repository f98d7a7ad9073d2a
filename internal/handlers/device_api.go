package handlers

import (
	"net/http"

	"lumirum/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Pull the current lighting schedule
// @Description  Called by hardware with its secret key. Uses the profile assigned to the device.
// @Tags         device-api
// @Produce      json
// @Param        x-api-key           header  string  true   "Device secret key"
// @Param        x-firmware-version  header  string  false  "Firmware version for check-in tracking"
// @Success      200  {object}  models.LightingSchedule
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /device/circadian [get]
func (h *Handler) deviceSchedule(c *gin.Context) {
	device, ok := deviceFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	schedule, err := h.services.Schedules.ForDevice(c.Request.Context(), device, service.ScheduleOptions{})
	if err != nil {
		h.respondServiceError(c, "device_schedule_failed", err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// @Summary      Report a telemetry event
// @Tags         device-api
// @Accept       json
// @Produce      json
// @Param        x-api-key  header  string                  true  "Device secret key"
// @Param        body       body    service.TelemetryInput  true  "Event"
// @Success      200  {object}  models.Telemetry
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /device/telemetry [post]
func (h *Handler) deviceTelemetry(c *gin.Context) {
	device, ok := deviceFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input service.TelemetryInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	event, err := h.services.Telemetry.Ingest(c.Request.Context(), device.ID, input)
	if err != nil {
		h.respondServiceError(c, "device_telemetry_failed", err)
		return
	}

	c.JSON(http.StatusOK, event)
}

package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// parseTimeframe reads the optional from/to query parameters. If 'to' is
// date-only it is widened to the end of that day. Writes a 400 and returns
// false on malformed input.
func parseTimeframe(c *gin.Context) (from, to time.Time, ok bool) {
	var err error
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return from, to, false
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return from, to, false
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return from, to, false
	}
	return from, to, true
}

// @Summary      List telemetry across all owned devices
// @Tags         telemetry
// @Produce      json
// @Param        from  query  string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2026-08-01)
// @Param        to    query  string  false  "End of range. Date-only treated as end of day."                    example(2026-08-31)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/telemetry [get]
// @Security     BearerAuth
func (h *Handler) listTelemetry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	from, to, ok := parseTimeframe(c)
	if !ok {
		return
	}

	events, err := h.services.Telemetry.List(c.Request.Context(), userID, from, to)
	if err != nil {
		h.respondServiceError(c, "telemetry_list_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// @Summary      List telemetry for one device
// @Tags         telemetry
// @Produce      json
// @Param        id    path   int     true   "Device ID"
// @Param        from  query  string  false  "Start of range"
// @Param        to    query  string  false  "End of range. Date-only treated as end of day."
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/telemetry/device/{id} [get]
// @Security     BearerAuth
func (h *Handler) listDeviceTelemetry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	deviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	from, to, ok := parseTimeframe(c)
	if !ok {
		return
	}

	events, err := h.services.Telemetry.ListByDevice(c.Request.Context(), userID, deviceID, from, to)
	if err != nil {
		h.respondServiceError(c, "telemetry_list_device_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// @Summary      Delete telemetry for one device
// @Description  Optionally bounded with from/to. Without bounds, deletes everything for the device.
// @Tags         telemetry
// @Produce      json
// @Param        id    path   int     true   "Device ID"
// @Param        from  query  string  false  "Start of range"
// @Param        to    query  string  false  "End of range. Date-only treated as end of day."
// @Success      200   {object}  map[string]interface{}  "deleted"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/telemetry/device/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteDeviceTelemetry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	deviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	from, to, ok := parseTimeframe(c)
	if !ok {
		return
	}

	deleted, err := h.services.Telemetry.DeleteByDevice(c.Request.Context(), userID, deviceID, from, to)
	if err != nil {
		h.respondServiceError(c, "telemetry_delete_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2026-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}

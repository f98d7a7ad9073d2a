package handlers

import (
	"net/http"
	"strconv"
	"time"

	"lumirum/internal/service"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive integer path parameter. Writes a 400 and
// returns false when the value is malformed.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return id, true
}

// @Summary      Create profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        body  body  service.ProfileInput  true  "Profile"
// @Success      200   {object}  models.Profile
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/profiles [post]
// @Security     BearerAuth
func (h *Handler) createProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input service.ProfileInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	profile, err := h.services.Profiles.Create(c.Request.Context(), userID, input)
	if err != nil {
		h.respondServiceError(c, "profile_create_failed", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary      List profiles
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, profiles"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/profiles [get]
// @Security     BearerAuth
func (h *Handler) listProfiles(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	profiles, err := h.services.Profiles.List(c.Request.Context(), userID)
	if err != nil {
		h.respondServiceError(c, "profile_list_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(profiles),
		"profiles": profiles,
	})
}

// @Summary      Get profile
// @Tags         profiles
// @Produce      json
// @Param        id  path  int  true  "Profile ID"
// @Success      200  {object}  models.Profile
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/profiles/{id} [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.services.Profiles.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.respondServiceError(c, "profile_get_failed", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary      Update profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "Profile ID"
// @Param        body  body  service.ProfileInput  true  "Profile"
// @Success      200   {object}  models.Profile
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/profiles/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.ProfileInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	profile, err := h.services.Profiles.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		h.respondServiceError(c, "profile_update_failed", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary      Delete profile
// @Tags         profiles
// @Produce      json
// @Param        id  path  int  true  "Profile ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/profiles/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Profiles.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondServiceError(c, "profile_delete_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Compute lighting schedule for a profile
// @Description  Recomputed on every call. 'points' caps the table size, 'interval' is a Go duration (e.g. 15m).
// @Tags         profiles
// @Produce      json
// @Param        id        path   int     true   "Profile ID"
// @Param        points    query  int     false  "Number of points"           example(96)
// @Param        interval  query  string  false  "Spacing between points"     example(15m)
// @Success      200  {object}  models.LightingSchedule
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/profiles/{id}/schedule [get]
// @Security     BearerAuth
func (h *Handler) getProfileSchedule(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	opts, ok := parseScheduleOptions(c)
	if !ok {
		return
	}

	schedule, err := h.services.Schedules.ForProfile(c.Request.Context(), userID, id, opts)
	if err != nil {
		h.respondServiceError(c, "profile_schedule_failed", err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// parseScheduleOptions reads the optional points/interval query parameters.
// Zero values mean "use the configured defaults".
func parseScheduleOptions(c *gin.Context) (service.ScheduleOptions, bool) {
	var opts service.ScheduleOptions
	if qs := c.Query("points"); qs != "" {
		points, err := strconv.Atoi(qs)
		if err != nil || points <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'points'; expected a positive integer"})
			return opts, false
		}
		opts.Points = points
	}
	if qs := c.Query("interval"); qs != "" {
		interval, err := time.ParseDuration(qs)
		if err != nil || interval <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'interval'; expected a positive duration like 15m"})
			return opts, false
		}
		opts.Interval = interval
	}
	return opts, true
}

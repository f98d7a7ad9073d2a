package handlers

import (
	"errors"
	"net/http"

	"lumirum/internal/circadian"
	"lumirum/internal/logger"
	"lumirum/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected by JWT)
	h.registerAPIRoutes(router)

	// Endpoints devices call with their secret key
	h.registerDeviceAPIRoutes(router)

	// Live telemetry over WebSocket, same port
	router.GET("/ws", h.userIdMiddleware, h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		account := api.Group("/auth")
		{
			account.GET("/me", h.me)
			account.PUT("/password", h.changePassword)
		}

		profiles := api.Group("/profiles")
		{
			profiles.POST("", h.createProfile)
			profiles.GET("", h.listProfiles)
			profiles.GET("/:id", h.getProfile)
			profiles.PUT("/:id", h.updateProfile)
			profiles.DELETE("/:id", h.deleteProfile)
			profiles.GET("/:id/schedule", h.getProfileSchedule)
		}

		devices := api.Group("/devices")
		{
			devices.POST("", h.createDevice)
			devices.GET("", h.listDevices)
			devices.GET("/:id", h.getDevice)
			devices.PUT("/:id", h.updateDevice)
			devices.DELETE("/:id", h.deleteDevice)
			devices.POST("/:id/key", h.regenerateDeviceKey)
		}

		telemetry := api.Group("/telemetry")
		{
			telemetry.GET("", h.listTelemetry)
			telemetry.GET("/device/:id", h.listDeviceTelemetry)
			telemetry.DELETE("/device/:id", h.deleteDeviceTelemetry)
		}
	}
}

func (h *Handler) registerDeviceAPIRoutes(r *gin.Engine) {
	device := r.Group("/device", h.deviceKeyMiddleware)
	{
		device.GET("/circadian", h.deviceSchedule)
		device.POST("/telemetry", h.deviceTelemetry)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondServiceError maps domain errors onto HTTP status codes. Anything
// unknown is a 500 with a generic message so internals stay internal.
func (h *Handler) respondServiceError(c *gin.Context, logKey string, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrDeviceNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNameTaken),
		errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidKey):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, circadian.ErrInvalidTimezone),
		errors.Is(err, circadian.ErrInvalidCoordinates),
		errors.Is(err, service.ErrNoProfile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

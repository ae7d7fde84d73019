package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"library_catalog/internal/logger"
	"library_catalog/internal/service"
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

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live catalog-availability feed (HTTP upgrade) — same port
	router.GET("/ws", h.wsCatalog)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
		auth.GET("/session", h.session)
		auth.POST("/logout", h.logout)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerBookRoutes(api)
		h.registerBorrowingRoutes(api)
		h.registerProfileRoutes(api)
	}
}

func (h *Handler) registerBookRoutes(api *gin.RouterGroup) {
	books := api.Group("/books")
	{
		books.GET("/", h.listBooks)
		books.GET("/available", h.listAvailable)
		// Query example: ?limit=3
		books.GET("/recommended", h.recommendBooks)
		books.POST("/:id/reserve", h.reserveBook)
	}
}

func (h *Handler) registerBorrowingRoutes(api *gin.RouterGroup) {
	borrowings := api.Group("/borrowings")
	{
		borrowings.GET("/", h.listActiveBorrowings)
		borrowings.POST("/:id/renew", h.renewBorrowing)
		borrowings.POST("/:id/return", h.returnBorrowing)
	}
}

func (h *Handler) registerProfileRoutes(api *gin.RouterGroup) {
	profile := api.Group("/profile")
	{
		profile.GET("/", h.getProfile)
		profile.PUT("/", h.updateProfile)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// statusForError maps domain errors onto HTTP status codes. Anything
// unrecognised is treated as an internal error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrBorrowingNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrBookUnavailable),
		errors.Is(err, service.ErrAlreadyReturned):
		return http.StatusConflict
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrMissingCurrentPassword),
		errors.Is(err, service.ErrWrongCurrentPassword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response. Domain errors keep their message;
// internal errors are masked behind a generic one.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := statusForError(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if code == http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}

	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(code, gin.H{"error": msg})
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

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/campfirehq/youthorg-api/pkg/errors"
)

// Handler serves the operational endpoints shared by every deployment.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"status": "healthy",
		},
	})
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"time":   time.Now(),
	})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now(),
	})
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}

// StatusFromError maps service error codes to HTTP status codes. Errors
// without a code fall through to 500.
func StatusFromError(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case apperrors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case apperrors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes the standard error envelope with the mapped status.
func Error(c *gin.Context, err error) {
	c.JSON(StatusFromError(err), NewErrorResponse(err.Error()))
}

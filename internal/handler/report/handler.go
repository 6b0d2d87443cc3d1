package report

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/handler"
	"github.com/campfirehq/youthorg-api/internal/middleware"
	reportService "github.com/campfirehq/youthorg-api/internal/service/report"
)

type Handler struct {
	service *reportService.Service
}

func NewHandler(service *reportService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.POST("", h.GenerateReport)
		reports.GET("", h.ListReports)
		reports.GET("/:id", h.GetReport)
	}
}

// GenerateReport snapshots the organization-wide counts at request time.
func (h *Handler) GenerateReport(c *gin.Context) {
	generatedBy, _ := uuid.Parse(c.GetString(middleware.ContextUserID))

	report, payload, err := h.service.GenerateReport(c.Request.Context(), generatedBy)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"report":  report,
		"payload": payload,
	}))
}

func (h *Handler) GetReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid report ID"))
		return
	}

	report, payload, err := h.service.GetReport(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"report":  report,
		"payload": payload,
	}))
}

func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.service.ListReports(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(reports))
}

package event

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/handler"
	"github.com/campfirehq/youthorg-api/internal/middleware"
	"github.com/campfirehq/youthorg-api/internal/model"
	eventService "github.com/campfirehq/youthorg-api/internal/service/event"
)

type Handler struct {
	service *eventService.Service
}

func NewHandler(service *eventService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	events := r.Group("/events")
	{
		events.POST("", h.CreateEvent)
		events.GET("", h.ListEvents)
		events.GET("/upcoming", h.UpcomingEvents)
		events.GET("/:id", h.GetEvent)
		events.PUT("/:id", h.UpdateEvent)
		events.DELETE("/:id", h.DeleteEvent)
	}
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	createdBy, _ := uuid.Parse(c.GetString(middleware.ContextUserID))
	event, err := h.service.CreateEvent(c.Request.Context(), &req, createdBy)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(event))
}

func (h *Handler) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid event ID"))
		return
	}

	event, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(event))
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid event ID"))
		return
	}

	event, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.TeamID = req.TeamID

	if err := h.service.UpdateEvent(c.Request.Context(), event); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(event))
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid event ID"))
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.service.ListEvents(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(events))
}

// UpcomingEvents lists events starting within the window, default 30 days.
func (h *Handler) UpcomingEvents(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid days parameter"))
			return
		}
		days = parsed
	}

	events, err := h.service.UpcomingEvents(c.Request.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(events))
}

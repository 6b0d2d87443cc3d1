package vehicle

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/handler"
	"github.com/campfirehq/youthorg-api/internal/model"
	historyService "github.com/campfirehq/youthorg-api/internal/service/history"
	vehicleService "github.com/campfirehq/youthorg-api/internal/service/vehicle"
)

type Handler struct {
	service *vehicleService.Service
	history *historyService.Service
}

func NewHandler(service *vehicleService.Service, history *historyService.Service) *Handler {
	return &Handler{service: service, history: history}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
		vehicles.GET("/:id/display", h.DisplayInfo)
	}

	history := r.Group("/assignment-history")
	{
		history.GET("/kids/:kidId", h.KidHistory)
		history.GET("/recent", h.RecentHistory)
	}
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var req model.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	vehicle, err := h.service.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(vehicle))
}

func (h *Handler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid vehicle ID"))
		return
	}

	vehicle, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(vehicle))
}

func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid vehicle ID"))
		return
	}

	vehicle, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	vehicle.Name = req.Name
	vehicle.PlateNumber = req.PlateNumber
	vehicle.Type = req.Type
	vehicle.Capacity = req.Capacity

	if err := h.service.UpdateVehicle(c.Request.Context(), vehicle); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(vehicle))
}

func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid vehicle ID"))
		return
	}

	if err := h.service.DeleteVehicle(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.service.ListVehicles(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(vehicles))
}

// DisplayInfo resolves a vehicle reference into its display form. Dangling
// ids still produce a placeholder rather than an error.
func (h *Handler) DisplayInfo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid vehicle ID"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.DisplayInfo(c.Request.Context(), &id)))
}

func (h *Handler) KidHistory(c *gin.Context) {
	kidID, err := uuid.Parse(c.Param("kidId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid kid ID"))
		return
	}

	entries, err := h.history.ListForKid(c.Request.Context(), kidID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}

// RecentHistory returns assignment changes in the lookback window, default
// seven days.
func (h *Handler) RecentHistory(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid days parameter"))
			return
		}
		days = parsed
	}

	since := time.Now().AddDate(0, 0, -days)
	entries, err := h.history.ListSince(c.Request.Context(), since)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}

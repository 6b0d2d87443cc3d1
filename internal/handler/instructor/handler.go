package instructor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/handler"
	"github.com/campfirehq/youthorg-api/internal/model"
	instructorService "github.com/campfirehq/youthorg-api/internal/service/instructor"
)

type Handler struct {
	service *instructorService.Service
}

func NewHandler(service *instructorService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	instructors := r.Group("/instructors")
	{
		instructors.POST("", h.CreateInstructor)
		instructors.GET("", h.ListInstructors)
		instructors.GET("/:id", h.GetInstructor)
		instructors.PUT("/:id", h.UpdateInstructor)
		instructors.DELETE("/:id", h.DeleteInstructor)
	}
}

func (h *Handler) CreateInstructor(c *gin.Context) {
	var req model.CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	instructor, err := h.service.CreateInstructor(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(instructor))
}

func (h *Handler) GetInstructor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid instructor ID"))
		return
	}

	instructor, err := h.service.GetInstructor(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(instructor))
}

func (h *Handler) UpdateInstructor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid instructor ID"))
		return
	}

	instructor, err := h.service.GetInstructor(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	instructor.Name = req.Name
	instructor.Email = req.Email
	instructor.Phone = req.Phone

	if err := h.service.UpdateInstructor(c.Request.Context(), instructor); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(instructor))
}

func (h *Handler) DeleteInstructor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid instructor ID"))
		return
	}

	if err := h.service.DeleteInstructor(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListInstructors(c *gin.Context) {
	instructors, err := h.service.ListInstructors(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(instructors))
}

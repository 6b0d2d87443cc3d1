package kid

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/handler"
	"github.com/campfirehq/youthorg-api/internal/middleware"
	"github.com/campfirehq/youthorg-api/internal/model"
	kidService "github.com/campfirehq/youthorg-api/internal/service/kid"
	"github.com/campfirehq/youthorg-api/pkg/fieldauth"
)

type Handler struct {
	service *kidService.Service
}

func NewHandler(service *kidService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	kids := r.Group("/kids")
	{
		kids.POST("", h.CreateKid)
		kids.GET("", h.ListKids)
		kids.GET("/field-permissions", h.FieldPermissions)
		kids.POST("/field-permissions/check", h.CheckFieldPermissions)
		kids.GET("/:id", h.GetKid)
		kids.PATCH("/:id/fields", h.UpdateKidFields)
		kids.DELETE("/:id", h.DeleteKid)
	}
}

// callerRole resolves the role the auth middleware stored. Unknown or
// missing roles get the guest projection downstream.
func callerRole(c *gin.Context) fieldauth.Role {
	return fieldauth.Role(c.GetString(middleware.ContextUserRole))
}

func (h *Handler) CreateKid(c *gin.Context) {
	var req model.CreateKidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	kid, err := h.service.CreateKid(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(kid))
}

// GetKid returns the record shaped for the caller's role, not the raw row.
func (h *Handler) GetKid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid kid ID"))
		return
	}

	view, err := h.service.GetKidView(c.Request.Context(), id, callerRole(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

func (h *Handler) ListKids(c *gin.Context) {
	views, err := h.service.ListKidViews(c.Request.Context(), callerRole(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(views))
}

// UpdateKidFields accepts a flat map of dotted field paths. Any path the
// caller's role may not edit fails the whole request.
func (h *Handler) UpdateKidFields(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid kid ID"))
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("no fields provided"))
		return
	}

	role := callerRole(c)
	kid, err := h.service.UpdateKidFields(c.Request.Context(), id, role, fields)
	if err != nil {
		handler.Error(c, err)
		return
	}

	view := fieldauth.Redact(role, kid.Record())
	view["id"] = kid.ID.String()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

// FieldPermissions returns the caller's field projection so UI forms can be
// rendered without probing individual paths.
func (h *Handler) FieldPermissions(c *gin.Context) {
	role := callerRole(c)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"role":     role,
		"visible":  fieldauth.VisibleFields(role),
		"editable": fieldauth.EditableFields(role),
		"hidden":   fieldauth.HiddenFields(role),
	}))
}

type checkFieldsRequest struct {
	Paths []string `json:"paths" binding:"required,min=1,dive,fieldpath"`
}

type fieldVerdict struct {
	CanView bool `json:"can_view"`
	CanEdit bool `json:"can_edit"`
}

// CheckFieldPermissions answers view/edit for a batch of known paths.
// Unknown paths fail binding rather than coming back denied.
func (h *Handler) CheckFieldPermissions(c *gin.Context) {
	var req checkFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	role := callerRole(c)
	verdicts := make(map[string]fieldVerdict, len(req.Paths))
	for _, path := range req.Paths {
		verdicts[path] = fieldVerdict{
			CanView: fieldauth.CanViewField(role, path),
			CanEdit: fieldauth.CanEditField(role, path),
		}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(verdicts))
}

func (h *Handler) DeleteKid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid kid ID"))
		return
	}

	if err := h.service.DeleteKid(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

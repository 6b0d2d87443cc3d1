package gallery

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/handler"
	"github.com/campfirehq/youthorg-api/internal/middleware"
	"github.com/campfirehq/youthorg-api/internal/model"
	galleryService "github.com/campfirehq/youthorg-api/internal/service/gallery"
)

type Handler struct {
	service *galleryService.Service
}

func NewHandler(service *galleryService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	galleries := r.Group("/galleries")
	{
		galleries.POST("", h.CreateGallery)
		galleries.GET("", h.ListGalleries)
		galleries.GET("/:id", h.GetGallery)
		galleries.DELETE("/:id", h.DeleteGallery)

		galleries.POST("/:id/photos", h.UploadPhoto)
		galleries.GET("/:id/photos", h.ListPhotos)
		galleries.GET("/:id/photos/:photoId", h.DownloadPhoto)
		galleries.DELETE("/:id/photos/:photoId", h.DeletePhoto)
	}
}

func (h *Handler) CreateGallery(c *gin.Context) {
	var req model.CreateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	gallery, err := h.service.CreateGallery(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gallery))
}

func (h *Handler) GetGallery(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid gallery ID"))
		return
	}

	gallery, err := h.service.GetGallery(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gallery))
}

func (h *Handler) ListGalleries(c *gin.Context) {
	galleries, err := h.service.ListGalleries(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(galleries))
}

func (h *Handler) DeleteGallery(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid gallery ID"))
		return
	}

	if err := h.service.DeleteGallery(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// UploadPhoto accepts a multipart form with a "photo" file and an optional
// "caption" field. The blob lands in object storage before the metadata row
// is written.
func (h *Handler) UploadPhoto(c *gin.Context) {
	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid gallery ID"))
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("photo file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read photo"))
		return
	}
	defer file.Close()

	uploadedBy, _ := uuid.Parse(c.GetString(middleware.ContextUserID))
	photo, err := h.service.AddPhoto(
		c.Request.Context(),
		galleryID,
		fileHeader.Filename,
		c.PostForm("caption"),
		uploadedBy,
		file,
	)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(photo))
}

func (h *Handler) ListPhotos(c *gin.Context) {
	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid gallery ID"))
		return
	}

	photos, err := h.service.ListPhotos(c.Request.Context(), galleryID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(photos))
}

func (h *Handler) DownloadPhoto(c *gin.Context) {
	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid gallery ID"))
		return
	}
	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid photo ID"))
		return
	}

	rc, err := h.service.OpenPhoto(c.Request.Context(), galleryID, photoID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		// Headers are already out; nothing left to do but log via gin's
		// error list.
		_ = c.Error(err)
	}
}

func (h *Handler) DeletePhoto(c *gin.Context) {
	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid gallery ID"))
		return
	}
	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid photo ID"))
		return
	}

	if err := h.service.DeletePhoto(c.Request.Context(), galleryID, photoID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

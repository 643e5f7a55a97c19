package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"editor-media-backend/internal/models"
	"editor-media-backend/internal/service"
	"editor-media-backend/pkg/lang"
	"editor-media-backend/pkg/validator"
)

type MediaHandler struct {
	mediaService   *service.MediaService
	previewService *service.PreviewService
}

func NewMediaHandler(mediaService *service.MediaService, previewService *service.PreviewService) *MediaHandler {
	return &MediaHandler{
		mediaService:   mediaService,
		previewService: previewService,
	}
}

// Upload stores an uploaded image, captures its natural dimensions and
// returns the repository entry.
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		file, err = c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
			return
		}
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing Content-Type header"})
		return
	}
	if !validator.ValidateImageContentType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid Content-Type header - images only"})
		return
	}

	preferredName := strings.TrimSpace(c.PostForm("name"))

	media, err := h.mediaService.UploadImage(file, preferredName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedType),
			errors.Is(err, service.ErrFileTooLarge),
			errors.Is(err, service.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, models.UploadResponse{
		URL:           media.URL,
		Filename:      media.Filename,
		Size:          media.Size,
		NaturalWidth:  media.NaturalWidth,
		NaturalHeight: media.NaturalHeight,
	})
}

// List returns a paginated listing of the media repository for the dialog's
// browse panel.
func (h *MediaHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, total, err := h.mediaService.List(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
	})
}

// Get returns a single media entry by ID.
func (h *MediaHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	media, err := h.mediaService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, media)
}

// Delete removes a media entry and its file. Destructive, so it requires an
// explicit confirmation parameter.
func (h *MediaHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	// The confirmation prompt is returned in the caller's language so the
	// dialog can show it verbatim before retrying with confirm=true.
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "deletion requires confirm=true",
			"confirm": lang.Lookup(c.Query("lang"), lang.KeyConfirmDelete),
		})
		return
	}

	if err := h.mediaService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "media deleted"})
}

// Preview serves a downscaled rendition of a stored image, generating it on
// first request.
func (h *MediaHandler) Preview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	media, err := h.mediaService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	path, ok := h.mediaService.LocalPath(media)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no local file for this media"})
		return
	}

	previewPath, _, err := h.previewService.Generate(path, h.previewService.DefaultBox())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.File(previewPath)
}

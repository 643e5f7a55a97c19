package dialoghandlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"editor-media-backend/internal/models"
	"editor-media-backend/internal/service"
	"editor-media-backend/pkg/geometry"
	dialogservice "editor-media-backend/plugins/imagedetails/service"
)

type DialogHandler struct {
	dialogService *dialogservice.DialogService
}

func NewDialogHandler(dialogService *dialogservice.DialogService) *DialogHandler {
	return &DialogHandler{dialogService: dialogService}
}

// SetService updates the dialog service reference.
func (h *DialogHandler) SetService(dialogService *dialogservice.DialogService) {
	if h == nil {
		return
	}
	h.dialogService = dialogService
}

func (h *DialogHandler) ensureService(c *gin.Context) bool {
	if h == nil || h.dialogService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image details plugin is not active"})
		return false
	}
	return true
}

// PreviewFit answers with the preview dimensions for a subject inside the
// dialog's container. An unmeasured container gets 202 with a retry flag so
// the client asks again after layout settles.
func (h *DialogHandler) PreviewFit(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	var req models.PreviewFitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.dialogService.PreviewFit(req)
	if err != nil {
		if errors.Is(err, geometry.ErrUnmeasuredBox) {
			c.JSON(http.StatusAccepted, gin.H{"retry": true})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// LinkedDimension recomputes the counterpart size field.
func (h *DialogHandler) LinkedDimension(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	var req models.LinkedDimensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.dialogService.LinkedDimension(req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// State resolves the dialog's initial state for an existing image.
func (h *DialogHandler) State(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	var req models.DialogStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.dialogService.State(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, dialogservice.ErrInvalidURL),
			errors.Is(err, dialogservice.ErrInvalidSize):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrMediaNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Render turns the dialog submit payload into an HTML fragment.
func (h *DialogHandler) Render(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	var req models.RenderImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.dialogService.RenderImage(req)
	if err != nil {
		switch {
		case errors.Is(err, dialogservice.ErrInvalidURL),
			errors.Is(err, dialogservice.ErrInvalidSize):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Strings returns the dialog's localized labels.
func (h *DialogHandler) Strings(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	code := c.Query("lang")
	c.JSON(http.StatusOK, gin.H{"strings": h.dialogService.Strings(code)})
}

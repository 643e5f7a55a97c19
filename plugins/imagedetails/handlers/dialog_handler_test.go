package dialoghandlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"editor-media-backend/internal/config"
	"editor-media-backend/internal/markup"
	"editor-media-backend/internal/models"
	"editor-media-backend/internal/repository"
	"editor-media-backend/internal/service"
	"editor-media-backend/pkg/cache"
	"editor-media-backend/pkg/geometry"
	"editor-media-backend/pkg/validator"
	dialogservice "editor-media-backend/plugins/imagedetails/service"

	"gorm.io/gorm"
)

type stubMediaRepo struct {
	images map[string]*models.MediaImage
}

func (r *stubMediaRepo) Create(image *models.MediaImage) error {
	r.images[image.URL] = image
	return nil
}

func (r *stubMediaRepo) Upsert(image *models.MediaImage) error {
	return r.Create(image)
}

func (r *stubMediaRepo) GetByID(id uint) (*models.MediaImage, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMediaRepo) GetByURL(url string) (*models.MediaImage, error) {
	if image, ok := r.images[url]; ok {
		return image, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMediaRepo) List(offset, limit int) ([]models.MediaImage, int64, error) {
	return nil, 0, nil
}

func (r *stubMediaRepo) ListProbePending(limit int) ([]models.MediaImage, error) {
	return nil, nil
}

func (r *stubMediaRepo) UpdateDimensions(id uint, width, height int, pending bool) error {
	return nil
}

func (r *stubMediaRepo) Delete(id uint) error {
	return nil
}

var _ repository.MediaRepository = (*stubMediaRepo)(nil)

func newTestRouter(t *testing.T) (*gin.Engine, *stubMediaRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Init()

	cfg := &config.Config{
		SiteURL:         "http://localhost:8080",
		DefaultLanguage: "en",
	}

	repo := &stubMediaRepo{images: make(map[string]*models.MediaImage)}
	mediaService := service.NewMediaService(repo, nil, cache.Disabled(), t.TempDir(), cfg.SiteURL, 10*1024*1024, 3)
	previewService := service.NewPreviewService(t.TempDir(), geometry.Box{Width: 480, Height: 480})

	registry := markup.NewRegistry()
	markup.RegisterImage(registry)

	handler := NewDialogHandler(dialogservice.NewDialogService(cfg, mediaService, previewService, registry, cache.Disabled()))

	router := gin.New()
	editor := router.Group("/api/v1/editor/image")
	{
		editor.POST("/preview-fit", handler.PreviewFit)
		editor.POST("/linked-dimension", handler.LinkedDimension)
		editor.POST("/state", handler.State)
		editor.POST("/render", handler.Render)
		editor.GET("/strings", handler.Strings)
	}

	return router, repo
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPreviewFitEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/editor/image/preview-fit", models.PreviewFitRequest{
		NaturalWidth:  400,
		NaturalHeight: 200,
		BoxWidth:      100,
		BoxHeight:     100,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.PreviewFitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Width != 100 || resp.Height != 50 {
		t.Fatalf("expected 100x50, got %gx%g", resp.Width, resp.Height)
	}
}

func TestPreviewFitEndpointRetriesUnmeasuredBox(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/editor/image/preview-fit", models.PreviewFitRequest{
		NaturalWidth:  400,
		NaturalHeight: 200,
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp["retry"] {
		t.Fatal("expected a retry flag")
	}
}

func TestLinkedDimensionEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/editor/image/linked-dimension", models.LinkedDimensionRequest{
		Edited:        "width",
		Value:         400,
		NaturalWidth:  800,
		NaturalHeight: 600,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.LinkedDimensionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Value != 300 {
		t.Fatalf("expected 300, got %g", resp.Value)
	}
}

func TestLinkedDimensionEndpointValidatesAxis(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/editor/image/linked-dimension", map[string]interface{}{
		"edited": "depth",
		"value":  400,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStateEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/editor/image/state", models.DialogStateRequest{
		URL: "/uploads/missing.png",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStateEndpoint(t *testing.T) {
	router, repo := newTestRouter(t)
	repo.images["/uploads/pic.png"] = &models.MediaImage{
		URL:           "/uploads/pic.png",
		NaturalWidth:  800,
		NaturalHeight: 600,
	}

	w := postJSON(t, router, "/api/v1/editor/image/state", models.DialogStateRequest{
		URL:       "/uploads/pic.png",
		BoxWidth:  400,
		BoxHeight: 400,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.DialogStateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.NaturalWidth != 800 || !resp.CanLink || !resp.Local {
		t.Fatalf("unexpected state: %+v", resp)
	}
}

func TestRenderEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/editor/image/render", models.RenderImageRequest{
		URL:   "https://example.com/cat.png",
		Alt:   "A cat",
		Width: "400",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.RenderImageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.HTML == "" {
		t.Fatal("expected rendered markup")
	}
}

func TestRenderEndpointValidatesSizeField(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/editor/image/render", map[string]interface{}{
		"url":   "https://example.com/cat.png",
		"width": "40px",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStringsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/editor/image/strings?lang=ru", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Strings map[string]string `json:"strings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Strings) == 0 {
		t.Fatal("expected localized strings")
	}
}

func TestHandlerWithoutServiceIsUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewDialogHandler(nil)
	router := gin.New()
	router.POST("/render", handler.Render)

	w := postJSON(t, router, "/render", models.RenderImageRequest{URL: "https://example.com/cat.png"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

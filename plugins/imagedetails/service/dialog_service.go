package dialogservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"editor-media-backend/internal/config"
	"editor-media-backend/internal/markup"
	"editor-media-backend/internal/models"
	"editor-media-backend/internal/service"
	"editor-media-backend/pkg/cache"
	"editor-media-backend/pkg/geometry"
	"editor-media-backend/pkg/lang"
	"editor-media-backend/pkg/logger"
	"editor-media-backend/pkg/validator"
	"editor-media-backend/pkg/weburl"
)

const renderCacheTTL = time.Hour

// DialogService implements the image details dialog operations: preview
// fitting, proportional linking, initial state detection and final markup
// rendering.
type DialogService struct {
	cfg     *config.Config
	media   *service.MediaService
	preview *service.PreviewService
	markup  *markup.Registry
	cache   *cache.Cache
}

func NewDialogService(cfg *config.Config, mediaService *service.MediaService, previewService *service.PreviewService, registry *markup.Registry, cacheService *cache.Cache) *DialogService {
	return &DialogService{
		cfg:     cfg,
		media:   mediaService,
		preview: previewService,
		markup:  registry,
		cache:   cacheService,
	}
}

// renderContext adapts the service's sanitizer and site root to the markup
// registry's rendering contract.
type renderContext struct {
	rootURL string
}

func (renderContext) SanitizeHTML(input string) string {
	return validator.SanitizeHTML(input)
}

func (c renderContext) RootURL() string {
	return c.rootURL
}

// PreviewFit computes the dimensions a subject occupies inside the dialog's
// preview container. geometry.ErrUnmeasuredBox means the container has not
// settled yet and the caller should retry after layout.
func (s *DialogService) PreviewFit(req models.PreviewFitRequest) (*models.PreviewFitResponse, error) {
	subject := geometry.Dimensions{Width: req.NaturalWidth, Height: req.NaturalHeight}.OrFallback()
	box := geometry.Box{Width: req.BoxWidth, Height: req.BoxHeight}

	fitted, err := s.preview.Fit(subject, box)
	if err != nil {
		return nil, err
	}

	return &models.PreviewFitResponse{Width: fitted.Width, Height: fitted.Height}, nil
}

// LinkedDimension recomputes the counterpart size field after one of the two
// was edited with proportional linking enabled.
func (s *DialogService) LinkedDimension(req models.LinkedDimensionRequest) (*models.LinkedDimensionResponse, error) {
	axis := geometry.AxisWidth
	if req.Edited == "height" {
		axis = geometry.AxisHeight
	}

	natural := geometry.Dimensions{Width: req.NaturalWidth, Height: req.NaturalHeight}
	value, err := geometry.LinkedDimension(axis, req.Value, natural)
	if err != nil {
		return nil, err
	}

	return &models.LinkedDimensionResponse{Value: value}, nil
}

// State resolves everything the dialog needs when it opens for an existing
// image: natural dimensions, link and size mode, locality and the fitted
// preview. A preview is deferred rather than failed when the container has
// no measured size yet, and when a remote image still awaits its probe.
func (s *DialogService) State(ctx context.Context, req models.DialogStateRequest) (*models.DialogStateResponse, error) {
	normalized, err := weburl.Normalize(req.URL, s.cfg.SiteURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	media, err := s.media.Resolve(ctx, normalized)
	if err != nil {
		return nil, err
	}

	width, err := geometry.ParseSizeField(req.Width)
	if err != nil {
		return nil, fmt.Errorf("%w: width %q", ErrInvalidSize, req.Width)
	}
	height, err := geometry.ParseSizeField(req.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: height %q", ErrInvalidSize, req.Height)
	}

	natural := geometry.Dimensions{
		Width:  float64(media.NaturalWidth),
		Height: float64(media.NaturalHeight),
	}

	resp := &models.DialogStateResponse{
		NaturalWidth:  media.NaturalWidth,
		NaturalHeight: media.NaturalHeight,
		LinkMode:      geometry.DetectInitialLinkMode(width, height, natural).String(),
		CanLink:       natural.IsKnown(),
		SizeMode:      resolveSizeMode(width, height, natural).String(),
		Local:         !media.External,
	}

	fitted, err := s.preview.Fit(natural.OrFallback(), geometry.Box{Width: req.BoxWidth, Height: req.BoxHeight})
	switch {
	case err == nil:
		resp.Preview = &models.PreviewFitResponse{Width: fitted.Width, Height: fitted.Height}
	case errors.Is(err, geometry.ErrUnmeasuredBox):
		resp.PreviewDeferred = true
	default:
		return nil, err
	}

	if media.ProbePending {
		resp.PreviewDeferred = true
	}

	return resp, nil
}

// resolveSizeMode maps the current field values onto original/custom. Empty
// fields mean the image renders at its natural size; percentages are always
// a custom size.
func resolveSizeMode(width, height geometry.SizeField, natural geometry.Dimensions) geometry.SizeMode {
	if width.Value == 0 && height.Value == 0 && !width.Percent && !height.Percent {
		return geometry.SizeOriginal
	}
	if width.Percent || height.Percent {
		return geometry.SizeCustom
	}
	current := geometry.Dimensions{Width: width.Value, Height: height.Value}
	return geometry.ResolveSizeMode(current, natural)
}

// RenderImage turns the dialog submit payload into the HTML fragment that
// gets inserted into the editor content.
func (s *DialogService) RenderImage(req models.RenderImageRequest) (*models.RenderImageResponse, error) {
	normalized, err := weburl.Normalize(req.URL, s.cfg.SiteURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	width, err := geometry.ParseSizeField(req.Width)
	if err != nil {
		return nil, fmt.Errorf("%w: width %q", ErrInvalidSize, req.Width)
	}
	height, err := geometry.ParseSizeField(req.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: height %q", ErrInvalidSize, req.Height)
	}

	classes := markup.NewClassList()
	for _, name := range req.Classes {
		if validator.ValidateCSSClass(name) {
			classes.Add(name)
		}
	}

	elem := &markup.ImageContext{
		URL:          normalized,
		Alt:          validator.SanitizeString(req.Alt),
		Presentation: req.Presentation,
		Width:        width,
		Height:       height,
		CustomStyle:  validator.SanitizeInlineStyle(req.CustomStyle),
		Classes:      classes,
	}

	cacheKey := s.renderCacheKey(normalized, elem)
	var cached models.RenderImageResponse
	if err := s.cache.Get(cacheKey, &cached); err == nil {
		return &cached, nil
	}

	html, err := s.markup.Render(renderContext{rootURL: s.cfg.SiteURL}, "image", elem)
	if err != nil {
		return nil, err
	}

	logger.Debug("Rendered image element", map[string]interface{}{
		"url":     normalized,
		"classes": classes.Len(),
	})

	resp := &models.RenderImageResponse{HTML: html}
	if err := s.cache.Set(cacheKey, resp, renderCacheTTL); err != nil {
		logger.Error(err, "Failed to cache rendered markup", map[string]interface{}{"key": cacheKey})
	}
	return resp, nil
}

// renderCacheKey scopes entries by the media URL as stored in the
// repository, then by a digest of the remaining dialog payload, so deleting
// a media record can invalidate every cached variant with one pattern.
func (s *DialogService) renderCacheKey(normalized string, elem *markup.ImageContext) string {
	scopeURL := normalized
	if weburl.IsLocal(normalized, s.cfg.SiteURL) {
		scopeURL = weburl.RelativeToRoot(normalized, s.cfg.SiteURL)
	}

	variant := cache.Digest(fmt.Sprintf("%s|%t|%s|%s|%s|%s",
		elem.Alt,
		elem.Presentation,
		elem.Width.String(),
		elem.Height.String(),
		elem.CustomStyle,
		elem.Classes.String(),
	))
	return service.RenderCacheKey(scopeURL, variant)
}

// Strings returns the dialog's localized strings for a BCP-47 language code,
// falling back through the base language to the default catalog.
func (s *DialogService) Strings(code string) map[string]string {
	if code == "" && s.cfg != nil {
		code = s.cfg.DefaultLanguage
	}
	return lang.Strings(code)
}

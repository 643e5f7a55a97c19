package service

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"editor-media-backend/pkg/geometry"
)

// PreviewService renders bounded raster previews for the dialog. The
// bounding box normally comes from the client's measured container; the
// configured box is the fallback for unmeasured layouts.
type PreviewService struct {
	previewDir string
	defaultBox geometry.Box
}

func NewPreviewService(previewDir string, defaultBox geometry.Box) *PreviewService {
	if _, err := os.Stat(previewDir); os.IsNotExist(err) {
		os.MkdirAll(previewDir, 0755)
	}

	return &PreviewService{
		previewDir: previewDir,
		defaultBox: defaultBox,
	}
}

// DefaultBox returns the configured fallback bounding box.
func (s *PreviewService) DefaultBox() geometry.Box {
	return s.defaultBox
}

// Fit computes the preview size for a subject inside the box without
// touching pixel data. Unknown subjects use the fallback dimensions.
func (s *PreviewService) Fit(subject geometry.Dimensions, box geometry.Box) (geometry.Dimensions, error) {
	return geometry.FitIntoBox(subject.OrFallback(), box)
}

// Generate scales the stored image down to fit the box and writes a JPEG
// preview next to the uploads. Existing previews are reused.
func (s *PreviewService) Generate(srcPath string, box geometry.Box) (string, geometry.Dimensions, error) {
	if box.Width <= 0 || box.Height <= 0 {
		box = s.defaultBox
	}

	previewName := fmt.Sprintf("%s-%dx%d.jpg", previewBase(srcPath), int(box.Width), int(box.Height))
	previewPath := filepath.Join(s.previewDir, previewName)

	f, err := os.Open(srcPath)
	if err != nil {
		return "", geometry.Dimensions{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", geometry.Dimensions{}, fmt.Errorf("%w: %v", ErrProbeFailed, err)
	}

	bounds := img.Bounds()
	subject := geometry.Dimensions{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}

	fitted, err := geometry.FitIntoBox(subject.OrFallback(), box)
	if err != nil {
		return "", geometry.Dimensions{}, err
	}

	if _, err := os.Stat(previewPath); err == nil {
		return previewPath, fitted, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(fitted.Width), int(fitted.Height)))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, img, bounds, draw.Over, nil)

	out, err := os.Create(previewPath)
	if err != nil {
		return "", geometry.Dimensions{}, err
	}
	defer out.Close()

	if err := jpeg.Encode(out, dst, &jpeg.Options{Quality: 85}); err != nil {
		os.Remove(previewPath)
		return "", geometry.Dimensions{}, err
	}

	return previewPath, fitted, nil
}

func previewBase(srcPath string) string {
	base := filepath.Base(srcPath)
	ext := filepath.Ext(base)
	if ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base
}

package service

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"editor-media-backend/pkg/geometry"
)

func writeTestPNG(t *testing.T, dir string, width, height int) string {
	t.Helper()

	path := filepath.Join(dir, "subject.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestPreviewGenerateScalesDown(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, 800, 400)

	svc := NewPreviewService(filepath.Join(dir, "previews"), geometry.Box{Width: 480, Height: 480})

	path, fitted, err := svc.Generate(src, geometry.Box{Width: 200, Height: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fitted.Width != 200 || fitted.Height != 100 {
		t.Fatalf("unexpected fitted size: %+v", fitted)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected preview file: %v", err)
	}
}

func TestPreviewGenerateKeepsSmallSubjects(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, 64, 32)

	svc := NewPreviewService(filepath.Join(dir, "previews"), geometry.Box{Width: 480, Height: 480})

	_, fitted, err := svc.Generate(src, geometry.Box{Width: 200, Height: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fitted.Width != 64 || fitted.Height != 32 {
		t.Fatalf("small subject must not be upscaled: %+v", fitted)
	}
}

func TestPreviewGenerateUsesDefaultBoxWhenUnmeasured(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, 960, 960)

	svc := NewPreviewService(filepath.Join(dir, "previews"), geometry.Box{Width: 480, Height: 480})

	_, fitted, err := svc.Generate(src, geometry.Box{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fitted.Width != 480 || fitted.Height != 480 {
		t.Fatalf("expected default box to apply: %+v", fitted)
	}
}

func TestPreviewFitFallsBackForUnknownSubjects(t *testing.T) {
	svc := NewPreviewService(t.TempDir(), geometry.Box{Width: 480, Height: 480})

	fitted, err := svc.Fit(geometry.Dimensions{}, geometry.Box{Width: 1000, Height: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fitted != geometry.FallbackSubject {
		t.Fatalf("expected fallback subject, got %+v", fitted)
	}
}

func TestPreviewFitReportsUnmeasuredBox(t *testing.T) {
	svc := NewPreviewService(t.TempDir(), geometry.Box{Width: 480, Height: 480})

	if _, err := svc.Fit(geometry.Dimensions{Width: 100, Height: 100}, geometry.Box{}); !errors.Is(err, geometry.ErrUnmeasuredBox) {
		t.Fatalf("expected ErrUnmeasuredBox, got %v", err)
	}
}

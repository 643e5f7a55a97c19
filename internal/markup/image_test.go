package markup

import (
	"strings"
	"testing"

	"editor-media-backend/pkg/geometry"
)

type stubContext struct{}

func (stubContext) SanitizeHTML(input string) string { return input }
func (stubContext) RootURL() string                  { return "https://cms.example.com" }

func renderTestImage(t *testing.T, img *ImageContext) string {
	t.Helper()

	reg := NewRegistry()
	RegisterImage(reg)

	html, err := reg.Render(stubContext{}, "image", img)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	return html
}

func TestRenderImagePixelSizes(t *testing.T) {
	html := renderTestImage(t, &ImageContext{
		URL:    "/uploads/cat.png",
		Alt:    "A sleeping cat",
		Width:  geometry.SizeField{Value: 200},
		Height: geometry.SizeField{Value: 150},
	})

	want := `<img src="/uploads/cat.png" alt="A sleeping cat" width="200" height="150">`
	if html != want {
		t.Fatalf("expected %q, got %q", want, html)
	}
}

func TestRenderImagePresentation(t *testing.T) {
	html := renderTestImage(t, &ImageContext{
		URL:          "/uploads/divider.png",
		Alt:          "This alt must be dropped",
		Presentation: true,
	})

	if !strings.Contains(html, `alt=""`) {
		t.Fatalf("expected empty alt for decorative image: %q", html)
	}
	if !strings.Contains(html, `role="presentation"`) {
		t.Fatalf("expected presentation role: %q", html)
	}
	if strings.Contains(html, "dropped") {
		t.Fatalf("alt text leaked into decorative image: %q", html)
	}
}

func TestRenderImagePercentSizesGoToStyle(t *testing.T) {
	html := renderTestImage(t, &ImageContext{
		URL:    "/uploads/wide.png",
		Alt:    "wide",
		Width:  geometry.SizeField{Value: 50, Percent: true},
		Height: geometry.SizeField{Value: 50, Percent: true},
	})

	if strings.Contains(html, `width="`) {
		t.Fatalf("percent width must not emit a width attribute: %q", html)
	}
	if !strings.Contains(html, "width: 50%") || !strings.Contains(html, "height: 50%") {
		t.Fatalf("expected percent declarations in style: %q", html)
	}
}

func TestRenderImageCustomStyleAndClasses(t *testing.T) {
	html := renderTestImage(t, &ImageContext{
		URL:         "/uploads/cat.png",
		Alt:         "cat",
		CustomStyle: "border: 1px solid red;",
		Classes:     NewClassList("img-fluid", "rounded"),
	})

	if !strings.Contains(html, `class="img-fluid rounded"`) {
		t.Fatalf("expected class attribute: %q", html)
	}
	if !strings.Contains(html, "border: 1px solid red;") {
		t.Fatalf("expected custom style: %q", html)
	}
}

func TestRenderImageEscapesAttributes(t *testing.T) {
	html := renderTestImage(t, &ImageContext{
		URL: `/uploads/cat.png" onerror="alert(1)`,
		Alt: `<script>`,
	})

	if strings.Contains(html, `onerror="alert`) {
		t.Fatalf("unescaped url attribute: %q", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("unescaped alt attribute: %q", html)
	}
}

func TestRenderImageRequiresURL(t *testing.T) {
	reg := NewRegistry()
	RegisterImage(reg)

	if _, err := reg.Render(stubContext{}, "image", &ImageContext{Alt: "no url"}); err == nil {
		t.Fatal("expected error for missing url")
	}
}

func TestRegistryUnknownType(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Render(stubContext{}, "video", nil); err == nil {
		t.Fatal("expected error for unregistered type")
	}
}

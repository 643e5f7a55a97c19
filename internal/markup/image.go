package markup

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"editor-media-backend/pkg/geometry"
)

// ImageContext carries everything the dialog submits for an image element.
type ImageContext struct {
	URL          string
	Alt          string
	Presentation bool
	Width        geometry.SizeField
	Height       geometry.SizeField
	CustomStyle  string
	Classes      *ClassList
}

// RegisterImage registers the default image renderer on the provided registry.
func RegisterImage(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister("image", renderImage)
}

func renderImage(ctx RenderContext, elem interface{}) (string, error) {
	img, ok := elem.(*ImageContext)
	if !ok || img == nil {
		return "", fmt.Errorf("image renderer requires an *ImageContext, got %T", elem)
	}

	if strings.TrimSpace(img.URL) == "" {
		return "", fmt.Errorf("image url is required")
	}

	var sb strings.Builder
	sb.WriteString(`<img src="` + template.HTMLEscapeString(img.URL) + `"`)

	// A decorative image carries an empty alt so screen readers skip it.
	if img.Presentation {
		sb.WriteString(` alt="" role="presentation"`)
	} else {
		sb.WriteString(` alt="` + template.HTMLEscapeString(img.Alt) + `"`)
	}

	var styles []string
	if img.Width.Percent {
		if img.Width.Value > 0 {
			styles = append(styles, "width: "+img.Width.String())
		}
	} else if img.Width.Value > 0 {
		sb.WriteString(` width="` + formatPixels(img.Width.Value) + `"`)
	}
	if img.Height.Percent {
		if img.Height.Value > 0 {
			styles = append(styles, "height: "+img.Height.String())
		}
	} else if img.Height.Value > 0 {
		sb.WriteString(` height="` + formatPixels(img.Height.Value) + `"`)
	}

	if custom := strings.TrimSpace(img.CustomStyle); custom != "" {
		styles = append(styles, strings.TrimSuffix(custom, ";"))
	}
	if len(styles) > 0 {
		sb.WriteString(` style="` + template.HTMLEscapeString(strings.Join(styles, "; ")+";") + `"`)
	}

	if img.Classes.Len() > 0 {
		sb.WriteString(` class="` + template.HTMLEscapeString(img.Classes.String()) + `"`)
	}

	sb.WriteString(`>`)
	return sb.String(), nil
}

func formatPixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Package geometry implements the dimension-fitting and constrained-resize
// logic behind the editor's image details dialog: fitting a subject into a
// bounding box without distortion, and recomputing a linked dimension when
// one size field is edited with proportional linking enabled.
package geometry

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Dimensions is the natural size of a subject in pixels. A zero value on
// either axis means the size is unknown (vector sources, failed probes).
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Box is the rendered container area a subject preview must fit inside.
// A zero value on either axis means the container has not been measured
// yet; callers defer and retry once layout has settled.
type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FallbackSubject is substituted for subjects whose natural size is
// unknown before calling FitIntoBox.
var FallbackSubject = Dimensions{Width: 300, Height: 150}

var (
	ErrInvalidDimension  = errors.New("dimension is negative or not a finite number")
	ErrDegenerateSubject = errors.New("subject has a zero dimension")
	ErrUnmeasuredBox     = errors.New("box has not been measured yet")
)

// LinkMode reports whether editing one size field should recompute the
// other to preserve the subject's original aspect ratio.
type LinkMode int

const (
	Unlinked LinkMode = iota
	Linked
)

func (m LinkMode) String() string {
	if m == Linked {
		return "linked"
	}
	return "unlinked"
}

// SizeMode reports whether the current field values equal the subject's
// natural dimensions.
type SizeMode int

const (
	SizeOriginal SizeMode = iota
	SizeCustom
)

func (m SizeMode) String() string {
	if m == SizeOriginal {
		return "original"
	}
	return "custom"
}

// Axis identifies which size field was edited.
type Axis int

const (
	AxisWidth Axis = iota
	AxisHeight
)

// IsKnown reports whether both natural dimensions are available.
func (d Dimensions) IsKnown() bool {
	return d.Width > 0 && d.Height > 0
}

// OrFallback returns d unchanged when both dimensions are known and
// FallbackSubject otherwise.
func (d Dimensions) OrFallback() Dimensions {
	if d.IsKnown() {
		return d
	}
	return FallbackSubject
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validDimension(v float64) bool {
	return finite(v) && v >= 0
}

// FitIntoBox scales the subject to fit inside the box while preserving its
// aspect ratio. A subject that already fits strictly within the box is
// returned unchanged, so previews are never upscaled. The result is
// deterministic and idempotent: feeding the output back in yields the same
// dimensions.
func FitIntoBox(subject Dimensions, box Box) (Dimensions, error) {
	for _, v := range [...]float64{subject.Width, subject.Height, box.Width, box.Height} {
		if !validDimension(v) {
			return Dimensions{}, ErrInvalidDimension
		}
	}
	if subject.Width == 0 || subject.Height == 0 {
		return Dimensions{}, ErrDegenerateSubject
	}
	if box.Width == 0 || box.Height == 0 {
		return Dimensions{}, ErrUnmeasuredBox
	}

	if subject.Width < box.Width && subject.Height < box.Height {
		return subject, nil
	}

	scale := math.Min(box.Width/subject.Width, box.Height/subject.Height)
	return Dimensions{
		Width:  subject.Width * scale,
		Height: subject.Height * scale,
	}, nil
}

// IsPercentageValue reports whether the raw field value is expressed in
// percentage units rather than pixels.
func IsPercentageValue(value string) bool {
	return strings.HasSuffix(strings.TrimSpace(value), "%")
}

// ResolveSizeMode returns SizeOriginal iff the current field values match
// the natural dimensions exactly.
func ResolveSizeMode(current, natural Dimensions) SizeMode {
	if current.Width == natural.Width && current.Height == natural.Height {
		return SizeOriginal
	}
	return SizeCustom
}

// LinkedDimension recomputes the non-edited size field after the other one
// changed with linking enabled. The ratio is always taken from the natural
// size captured at load time, never from the currently displayed values,
// so repeated edits do not accumulate rounding drift.
func LinkedDimension(edited Axis, value float64, natural Dimensions) (float64, error) {
	if !validDimension(value) {
		return 0, ErrInvalidDimension
	}

	var editedNatural, oppositeNatural float64
	switch edited {
	case AxisWidth:
		editedNatural, oppositeNatural = natural.Width, natural.Height
	case AxisHeight:
		editedNatural, oppositeNatural = natural.Height, natural.Width
	default:
		return 0, ErrInvalidDimension
	}

	if editedNatural == 0 {
		return 0, ErrDegenerateSubject
	}

	return math.Round(value * oppositeNatural / editedNatural), nil
}

// SizeField is a user-editable dimension value, either plain pixels or a
// percentage of the container.
type SizeField struct {
	Value   float64
	Percent bool
}

// ParseSizeField parses a raw field value such as "300" or "50%". An empty
// string parses to a zero pixel field.
func ParseSizeField(raw string) (SizeField, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SizeField{}, nil
	}

	field := SizeField{Percent: strings.HasSuffix(trimmed, "%")}
	if field.Percent {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return SizeField{}, ErrInvalidDimension
	}
	if !validDimension(value) {
		return SizeField{}, ErrInvalidDimension
	}

	field.Value = value
	return field, nil
}

// String renders the field back into its raw form.
func (f SizeField) String() string {
	s := strconv.FormatFloat(f.Value, 'f', -1, 64)
	if f.Percent {
		return s + "%"
	}
	return s
}

// DetectInitialLinkMode determines whether the link toggle starts enabled
// when the dialog opens. Two percentage fields are linked iff their
// magnitudes agree, since percentages already express relative scale.
// Mixed pixel/percentage fields cannot be compared and start unlinked, as
// do subjects with an unknown natural dimension (the caller should disable
// the toggle entirely in that case). Pixel fields are linked when the
// width and height scale ratios agree to whole-percentage precision.
func DetectInitialLinkMode(width, height SizeField, natural Dimensions) LinkMode {
	if width.Percent && height.Percent {
		if width.Value == height.Value {
			return Linked
		}
		return Unlinked
	}
	if width.Percent != height.Percent {
		return Unlinked
	}
	if natural.Width == 0 || natural.Height == 0 {
		return Unlinked
	}

	widthRatio := math.Round(100 * width.Value / natural.Width)
	heightRatio := math.Round(100 * height.Value / natural.Height)
	if widthRatio == heightRatio {
		return Linked
	}
	return Unlinked
}

package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestFitIntoBoxNoUpscaling(t *testing.T) {
	got, err := FitIntoBox(Dimensions{Width: 100, Height: 50}, Box{Width: 200, Height: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Width != 100 || got.Height != 50 {
		t.Fatalf("expected subject unchanged, got %+v", got)
	}
}

func TestFitIntoBoxScalesDown(t *testing.T) {
	tests := []struct {
		name    string
		subject Dimensions
		box     Box
		want    Dimensions
	}{
		{"wide subject", Dimensions{400, 200}, Box{100, 100}, Dimensions{100, 50}},
		{"width limited", Dimensions{300, 100}, Box{150, 150}, Dimensions{150, 50}},
		{"tall subject", Dimensions{100, 400}, Box{100, 100}, Dimensions{25, 100}},
		{"exact box size", Dimensions{100, 100}, Box{100, 100}, Dimensions{100, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FitIntoBox(tt.subject, tt.box)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestFitIntoBoxPreservesAspectRatio(t *testing.T) {
	subjects := []Dimensions{
		{1920, 1080},
		{333, 777},
		{1024, 1},
		{7, 9001},
	}
	box := Box{Width: 240, Height: 180}

	for _, subject := range subjects {
		got, err := FitIntoBox(subject, box)
		if err != nil {
			t.Fatalf("unexpected error for %+v: %v", subject, err)
		}
		if got.Width > box.Width+1e-9 || got.Height > box.Height+1e-9 {
			t.Fatalf("result %+v exceeds box %+v", got, box)
		}
		wantRatio := subject.Width / subject.Height
		gotRatio := got.Width / got.Height
		if math.Abs(wantRatio-gotRatio) > 1e-9 {
			t.Fatalf("aspect ratio changed: want %f, got %f", wantRatio, gotRatio)
		}
	}
}

func TestFitIntoBoxIdempotent(t *testing.T) {
	subject := Dimensions{Width: 640, Height: 480}
	box := Box{Width: 200, Height: 200}

	first, err := FitIntoBox(subject, box)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := FitIntoBox(subject, box)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("repeated calls disagree: %+v vs %+v", first, second)
	}

	// Feeding the fitted size back in must be a fixed point.
	again, err := FitIntoBox(first, box)
	if err != nil {
		t.Fatalf("unexpected error refitting: %v", err)
	}
	if again != first {
		t.Fatalf("refit moved the result: %+v vs %+v", again, first)
	}
}

func TestFitIntoBoxErrors(t *testing.T) {
	tests := []struct {
		name    string
		subject Dimensions
		box     Box
		want    error
	}{
		{"zero subject width", Dimensions{0, 100}, Box{50, 50}, ErrDegenerateSubject},
		{"zero subject height", Dimensions{100, 0}, Box{50, 50}, ErrDegenerateSubject},
		{"unmeasured box width", Dimensions{100, 100}, Box{0, 50}, ErrUnmeasuredBox},
		{"unmeasured box height", Dimensions{100, 100}, Box{50, 0}, ErrUnmeasuredBox},
		{"negative subject", Dimensions{-1, 100}, Box{50, 50}, ErrInvalidDimension},
		{"nan box", Dimensions{100, 100}, Box{math.NaN(), 50}, ErrInvalidDimension},
		{"infinite subject", Dimensions{math.Inf(1), 100}, Box{50, 50}, ErrInvalidDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FitIntoBox(tt.subject, tt.box); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestIsPercentageValue(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"50%", true},
		{" 50% ", true},
		{"50", false},
		{"", false},
		{"%", true},
	}

	for _, tt := range tests {
		if got := IsPercentageValue(tt.value); got != tt.want {
			t.Fatalf("IsPercentageValue(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestResolveSizeMode(t *testing.T) {
	natural := Dimensions{Width: 160, Height: 160}

	if got := ResolveSizeMode(Dimensions{160, 160}, natural); got != SizeOriginal {
		t.Fatalf("expected original mode, got %v", got)
	}
	if got := ResolveSizeMode(Dimensions{200, 160}, natural); got != SizeCustom {
		t.Fatalf("expected custom mode, got %v", got)
	}
	if got := ResolveSizeMode(Dimensions{160, 120}, natural); got != SizeCustom {
		t.Fatalf("expected custom mode, got %v", got)
	}
}

func TestLinkedDimension(t *testing.T) {
	natural := Dimensions{Width: 400, Height: 300}

	tests := []struct {
		name   string
		edited Axis
		value  float64
		want   float64
	}{
		{"halved width", AxisWidth, 200, 150},
		{"doubled height", AxisHeight, 600, 800},
		{"rounding", AxisWidth, 100, 75},
		{"odd rounding", AxisWidth, 157, 118}, // 157*300/400 = 117.75
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LinkedDimension(tt.edited, tt.value, natural)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLinkedDimensionDegenerateSubject(t *testing.T) {
	if _, err := LinkedDimension(AxisWidth, 100, Dimensions{Width: 0, Height: 300}); !errors.Is(err, ErrDegenerateSubject) {
		t.Fatalf("expected ErrDegenerateSubject, got %v", err)
	}
	if _, err := LinkedDimension(AxisHeight, 100, Dimensions{Width: 400, Height: 0}); !errors.Is(err, ErrDegenerateSubject) {
		t.Fatalf("expected ErrDegenerateSubject, got %v", err)
	}
}

func TestParseSizeField(t *testing.T) {
	tests := []struct {
		raw     string
		want    SizeField
		wantErr bool
	}{
		{"300", SizeField{Value: 300}, false},
		{"50%", SizeField{Value: 50, Percent: true}, false},
		{" 12.5% ", SizeField{Value: 12.5, Percent: true}, false},
		{"", SizeField{}, false},
		{"abc", SizeField{}, true},
		{"-20", SizeField{}, true},
		{"-20%", SizeField{}, true},
	}

	for _, tt := range tests {
		got, err := ParseSizeField(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseSizeField(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseSizeField(%q): unexpected error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseSizeField(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestDetectInitialLinkMode(t *testing.T) {
	natural := Dimensions{Width: 400, Height: 300}

	tests := []struct {
		name    string
		width   SizeField
		height  SizeField
		natural Dimensions
		want    LinkMode
	}{
		{"original size", SizeField{Value: 400}, SizeField{Value: 300}, natural, Linked},
		{"uniform scale", SizeField{Value: 200}, SizeField{Value: 150}, natural, Linked},
		{"skewed scale", SizeField{Value: 200}, SizeField{Value: 300}, natural, Unlinked},
		{"equal percentages", SizeField{Value: 50, Percent: true}, SizeField{Value: 50, Percent: true}, natural, Linked},
		{"unequal percentages", SizeField{Value: 50, Percent: true}, SizeField{Value: 25, Percent: true}, natural, Unlinked},
		{"mixed units", SizeField{Value: 50, Percent: true}, SizeField{Value: 150}, natural, Unlinked},
		{"unknown natural width", SizeField{Value: 200}, SizeField{Value: 150}, Dimensions{0, 300}, Unlinked},
		{"unknown natural height", SizeField{Value: 200}, SizeField{Value: 150}, Dimensions{400, 0}, Unlinked},
		// Percentages compare by magnitude even when the natural size is unknown.
		{"percentages with unknown natural", SizeField{Value: 30, Percent: true}, SizeField{Value: 30, Percent: true}, Dimensions{0, 0}, Linked},
		// Ratios agreeing only after rounding to whole percentages still link.
		{"near match within tolerance", SizeField{Value: 133}, SizeField{Value: 100}, Dimensions{400, 300}, Linked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectInitialLinkMode(tt.width, tt.height, tt.natural); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDimensionsFallback(t *testing.T) {
	if got := (Dimensions{Width: 0, Height: 80}).OrFallback(); got != FallbackSubject {
		t.Fatalf("expected fallback, got %+v", got)
	}
	known := Dimensions{Width: 120, Height: 80}
	if got := known.OrFallback(); got != known {
		t.Fatalf("expected dimensions unchanged, got %+v", got)
	}
}

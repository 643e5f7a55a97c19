package models

// PreviewFitRequest asks for the preview size of a subject inside the
// dialog's measured container. Zero box dimensions mean the container has
// not finished layout yet; the endpoint answers with a retry signal.
type PreviewFitRequest struct {
	NaturalWidth  float64 `json:"natural_width" binding:"min=0"`
	NaturalHeight float64 `json:"natural_height" binding:"min=0"`
	BoxWidth      float64 `json:"box_width" binding:"min=0"`
	BoxHeight     float64 `json:"box_height" binding:"min=0"`
}

// PreviewFitResponse carries the fitted preview dimensions.
type PreviewFitResponse struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LinkedDimensionRequest asks for the counterpart value after one size
// field was edited with proportional linking enabled.
type LinkedDimensionRequest struct {
	Edited        string  `json:"edited" binding:"required,oneof=width height"`
	Value         float64 `json:"value" binding:"min=0"`
	NaturalWidth  float64 `json:"natural_width" binding:"min=0"`
	NaturalHeight float64 `json:"natural_height" binding:"min=0"`
}

// LinkedDimensionResponse carries the recomputed counterpart value.
type LinkedDimensionResponse struct {
	Value float64 `json:"value"`
}

// DialogStateRequest describes the dialog contents when it opens for an
// existing image: the current field values plus the measured container.
type DialogStateRequest struct {
	URL       string  `json:"url" binding:"required"`
	Width     string  `json:"width" binding:"sizefield"`
	Height    string  `json:"height" binding:"sizefield"`
	BoxWidth  float64 `json:"box_width" binding:"min=0"`
	BoxHeight float64 `json:"box_height" binding:"min=0"`
}

// DialogStateResponse is everything the frontend needs to initialise the
// size controls in one round trip.
type DialogStateResponse struct {
	NaturalWidth    int                 `json:"natural_width"`
	NaturalHeight   int                 `json:"natural_height"`
	LinkMode        string              `json:"link_mode"`
	CanLink         bool                `json:"can_link"`
	SizeMode        string              `json:"size_mode"`
	Local           bool                `json:"local"`
	Preview         *PreviewFitResponse `json:"preview,omitempty"`
	PreviewDeferred bool                `json:"preview_deferred,omitempty"`
}

// RenderImageRequest is the dialog submit payload.
type RenderImageRequest struct {
	URL          string   `json:"url" binding:"required"`
	Alt          string   `json:"alt" binding:"max=750"`
	Presentation bool     `json:"presentation"`
	Width        string   `json:"width" binding:"sizefield"`
	Height       string   `json:"height" binding:"sizefield"`
	CustomStyle  string   `json:"custom_style" binding:"max=500"`
	Classes      []string `json:"classes" binding:"max=20,dive,cssclass"`
}

// RenderImageResponse carries the HTML fragment inserted into the editor.
type RenderImageResponse struct {
	HTML string `json:"html"`
}

// UploadResponse describes a stored image after upload.
type UploadResponse struct {
	URL           string `json:"url"`
	Filename      string `json:"filename"`
	Size          int64  `json:"size"`
	NaturalWidth  int    `json:"natural_width"`
	NaturalHeight int    `json:"natural_height"`
}

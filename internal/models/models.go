package models

import "time"

// MediaImage is an image known to the backend. Natural dimensions are
// captured once when the image is first seen; a zero value means the size
// could not be determined (vector formats, unreachable remote files).
type MediaImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Filename string `gorm:"index;size:255" json:"filename"`
	URL      string `gorm:"uniqueIndex;size:2048;not null" json:"url"`
	MimeType string `gorm:"size:100" json:"mime_type"`
	Size     int64  `json:"size"`

	NaturalWidth  int `json:"natural_width"`
	NaturalHeight int `json:"natural_height"`

	// External marks images referenced by URL rather than uploaded here.
	External bool `gorm:"index" json:"external"`

	// ProbePending marks records whose dimensions still need a background
	// probe because the source was not readable at submit time.
	ProbePending bool `gorm:"index" json:"probe_pending"`
}

package app

// Compiled-in plugin features register their factories at init time.
import (
	_ "editor-media-backend/plugins/imagedetails"
)

package service

import "editor-media-backend/pkg/cache"

const renderCachePrefix = "render:image:"

// RenderCacheKey identifies one cached markup variant of a media URL. The
// URL segment is shared by every variant so deletion can invalidate them
// together.
func RenderCacheKey(url, variant string) string {
	return renderCachePrefix + cache.Digest(url) + ":" + variant
}

// renderCacheScope matches every cached render variant for the URL.
func renderCacheScope(url string) string {
	return renderCachePrefix + cache.Digest(url) + ":*"
}

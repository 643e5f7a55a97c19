package host

import (
	"editor-media-backend/internal/background"
	"editor-media-backend/internal/config"
	"editor-media-backend/internal/markup"
	"editor-media-backend/internal/repository"
	"editor-media-backend/internal/service"
	"editor-media-backend/pkg/cache"
	dialoghandlers "editor-media-backend/plugins/imagedetails/handlers"
	dialogservice "editor-media-backend/plugins/imagedetails/service"
)

// Host exposes the application's shared infrastructure to plugin features.
type Host interface {
	Config() *config.Config
	Cache() *cache.Cache
	Scheduler() *background.Scheduler
	Markup() *markup.Registry

	Repositories() RepositoryAccess
	CoreServices() CoreServiceAccess
	DialogServices() DialogServiceAccess
	DialogHandlers() DialogHandlerAccess
}

type RepositoryAccess interface {
	Media() repository.MediaRepository
}

type CoreServiceAccess interface {
	Media() *service.MediaService
	Preview() *service.PreviewService
}

type DialogServiceAccess interface {
	ImageDetails() *dialogservice.DialogService
	SetImageDetails(*dialogservice.DialogService)
}

type DialogHandlerAccess interface {
	ImageDetails() *dialoghandlers.DialogHandler
	SetImageDetails(*dialoghandlers.DialogHandler)
}

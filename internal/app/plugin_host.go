package app

import (
	"editor-media-backend/internal/background"
	"editor-media-backend/internal/config"
	"editor-media-backend/internal/markup"
	"editor-media-backend/internal/plugin/host"
	"editor-media-backend/internal/repository"
	"editor-media-backend/internal/service"
	"editor-media-backend/pkg/cache"
	dialoghandlers "editor-media-backend/plugins/imagedetails/handlers"
	dialogservice "editor-media-backend/plugins/imagedetails/service"
)

// The Application doubles as the plugin host: features receive it behind
// the host.Host interface and bind their services through the accessors
// below.

type applicationRepositoryAccess struct {
	app *Application
}

type applicationCoreServices struct {
	app *Application
}

type applicationDialogServices struct {
	app *Application
}

type applicationDialogHandlers struct {
	app *Application
}

func (a *Application) Config() *config.Config {
	if a == nil {
		return nil
	}
	return a.cfg
}

func (a *Application) Cache() *cache.Cache {
	if a == nil {
		return nil
	}
	return a.cache
}

func (a *Application) Scheduler() *background.Scheduler {
	if a == nil {
		return nil
	}
	return a.scheduler
}

func (a *Application) Markup() *markup.Registry {
	if a == nil {
		return nil
	}
	return a.markup
}

func (a *Application) Repositories() host.RepositoryAccess {
	return applicationRepositoryAccess{app: a}
}

func (a *Application) CoreServices() host.CoreServiceAccess {
	return applicationCoreServices{app: a}
}

func (a *Application) DialogServices() host.DialogServiceAccess {
	return applicationDialogServices{app: a}
}

func (a *Application) DialogHandlers() host.DialogHandlerAccess {
	return applicationDialogHandlers{app: a}
}

func (r applicationRepositoryAccess) Media() repository.MediaRepository {
	if r.app == nil {
		return nil
	}
	return r.app.repositories.Media
}

func (s applicationCoreServices) Media() *service.MediaService {
	if s.app == nil {
		return nil
	}
	return s.app.services.Media
}

func (s applicationCoreServices) Preview() *service.PreviewService {
	if s.app == nil {
		return nil
	}
	return s.app.services.Preview
}

func (s applicationDialogServices) ImageDetails() *dialogservice.DialogService {
	if s.app == nil {
		return nil
	}
	return s.app.dialogService
}

func (s applicationDialogServices) SetImageDetails(svc *dialogservice.DialogService) {
	if s.app == nil {
		return
	}
	s.app.dialogService = svc

	if s.app.dialogHandler != nil {
		s.app.dialogHandler.SetService(svc)
	}
}

func (h applicationDialogHandlers) ImageDetails() *dialoghandlers.DialogHandler {
	if h.app == nil {
		return nil
	}
	return h.app.dialogHandler
}

func (h applicationDialogHandlers) SetImageDetails(handler *dialoghandlers.DialogHandler) {
	if h.app == nil {
		return
	}
	h.app.dialogHandler = handler
}

package imagedetails

import (
	"fmt"

	"editor-media-backend/internal/markup"
	"editor-media-backend/internal/plugin/host"
	"editor-media-backend/internal/plugin/registry"
	pluginruntime "editor-media-backend/internal/plugin/runtime"
	dialoghandlers "editor-media-backend/plugins/imagedetails/handlers"
	dialogservice "editor-media-backend/plugins/imagedetails/service"
)

func init() {
	registry.Register("imagedetails", NewFeature)
}

type Feature struct {
	host host.Host
}

func NewFeature(h host.Host) (pluginruntime.Feature, error) {
	if h == nil {
		return nil, fmt.Errorf("host is required")
	}
	return &Feature{host: h}, nil
}

func (f *Feature) Activate() error {
	if f == nil || f.host == nil {
		return fmt.Errorf("feature host is not configured")
	}

	services := f.host.CoreServices()
	dialogServices := f.host.DialogServices()

	svc := dialogServices.ImageDetails()
	if svc == nil {
		svc = dialogservice.NewDialogService(
			f.host.Config(),
			services.Media(),
			services.Preview(),
			f.host.Markup(),
			f.host.Cache(),
		)
		dialogServices.SetImageDetails(svc)
	}

	if reg := f.host.Markup(); reg != nil {
		if _, ok := reg.Get("image"); !ok {
			markup.RegisterImage(reg)
		}
	}

	handlerAccess := f.host.DialogHandlers()
	if handler := handlerAccess.ImageDetails(); handler != nil {
		handler.SetService(svc)
	} else {
		handlerAccess.SetImageDetails(dialoghandlers.NewDialogHandler(svc))
	}

	return nil
}

func (f *Feature) Deactivate() error {
	if f == nil || f.host == nil {
		return nil
	}

	if handler := f.host.DialogHandlers().ImageDetails(); handler != nil {
		handler.SetService(nil)
	}

	f.host.DialogServices().SetImageDetails(nil)

	return nil
}

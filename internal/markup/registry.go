// Package markup renders editor elements into the HTML fragments that get
// inserted into rich-text content on dialog submit.
package markup

import (
	"fmt"
	"strings"
	"sync"
)

// RenderContext exposes the minimal capabilities required by element renderers.
type RenderContext interface {
	// SanitizeHTML should clean potentially unsafe markup before rendering.
	SanitizeHTML(input string) string
	// RootURL returns the site root used to classify element URLs.
	RootURL() string
}

// Renderer describes a function capable of rendering an element context into an HTML fragment.
type Renderer func(ctx RenderContext, elem interface{}) (string, error)

// Registry stores the mapping between element types and their renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty element renderer registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register associates a renderer with a normalised element type. It returns an error when the input is invalid.
func (r *Registry) Register(elementType string, renderer Renderer) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}

	elementType = strings.TrimSpace(strings.ToLower(elementType))
	if elementType == "" {
		return fmt.Errorf("element type is empty")
	}
	if renderer == nil {
		return fmt.Errorf("renderer is nil for type %s", elementType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderers == nil {
		r.renderers = make(map[string]Renderer)
	}
	r.renderers[elementType] = renderer
	return nil
}

// MustRegister registers the renderer and panics if registration fails.
func (r *Registry) MustRegister(elementType string, renderer Renderer) {
	if err := r.Register(elementType, renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer for the provided element type if it exists.
func (r *Registry) Get(elementType string) (Renderer, bool) {
	if r == nil {
		return nil, false
	}

	elementType = strings.TrimSpace(strings.ToLower(elementType))
	if elementType == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[elementType]
	return renderer, ok
}

// Render looks up the renderer for the element type and invokes it.
func (r *Registry) Render(ctx RenderContext, elementType string, elem interface{}) (string, error) {
	renderer, ok := r.Get(elementType)
	if !ok {
		return "", fmt.Errorf("no renderer registered for type %q", elementType)
	}
	return renderer(ctx, elem)
}

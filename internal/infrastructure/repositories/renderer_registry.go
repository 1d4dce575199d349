package repositories

import (
	"fmt"

	domainRepos "github.com/sparkyb/github-report/internal/domain/repositories"
)

// RendererRegistry manages all registered report renderer implementations.
type RendererRegistry struct {
	renderers map[string]domainRepos.RendererRepository
}

// NewRendererRegistry creates an empty renderer registry.
func NewRendererRegistry() *RendererRegistry {
	return &RendererRegistry{
		renderers: make(map[string]domainRepos.RendererRepository),
	}
}

// Register adds a renderer under its name.
func (r *RendererRegistry) Register(renderer domainRepos.RendererRepository) {
	r.renderers[renderer.Name()] = renderer
}

// Get returns the renderer for the given format name.
func (r *RendererRegistry) Get(name string) (domainRepos.RendererRepository, error) {
	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q", name)
	}
	return renderer, nil
}

// Names returns the list of registered format names.
func (r *RendererRegistry) Names() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	return names
}

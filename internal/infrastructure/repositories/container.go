package repositories

import (
	domainRepos "github.com/sparkyb/github-report/internal/domain/repositories"
	"github.com/sparkyb/github-report/internal/infrastructure/repositories/gitclone"
	ghRepo "github.com/sparkyb/github-report/internal/infrastructure/repositories/github"
	glRepo "github.com/sparkyb/github-report/internal/infrastructure/repositories/gitlab"
	"github.com/sparkyb/github-report/internal/infrastructure/repositories/render"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewGitHubProviderRepository)
		reg.Register("gitlab", glRepo.NewGitLabProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register renderer registry with all output formats
	if err := container.Provide(func() *RendererRegistry {
		reg := NewRendererRegistry()
		reg.Register(render.NewTableRendererRepository())
		reg.Register(render.NewListRendererRepository())
		reg.Register(render.NewCSVRendererRepository())
		reg.Register(render.NewJSONRendererRepository())
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.InspectorRepository {
		return gitclone.NewGitCloneInspectorRepository()
	}); err != nil {
		return err
	}

	return nil
}

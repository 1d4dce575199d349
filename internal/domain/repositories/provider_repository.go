package repositories

import (
	"context"

	"github.com/sparkyb/github-report/internal/domain/entities"
)

// ProviderRepository abstracts a Git hosting service (GitHub, GitLab).
// Each implementation handles authentication, repository listing with
// full pagination, and single-repository lookup for its platform.
type ProviderRepository interface {
	// Name returns the provider identifier (e.g. "github", "gitlab").
	Name() string

	// ListRepositories returns every repository owned by the given
	// organization or user, following pagination to exhaustion. A failed
	// page fails the whole listing; partial results are never returned.
	// With OwnerAny the owner is tried as an organization first, then
	// as a user.
	ListRepositories(
		ctx context.Context,
		owner string,
		kind entities.OwnerKind,
	) ([]entities.Repository, error)

	// ListOwn returns the repositories of the authenticated user.
	// It requires a token.
	ListOwn(ctx context.Context) ([]entities.Repository, error)

	// GetRepository returns the metadata of a single repository. An
	// empty owner resolves to the authenticated user.
	GetRepository(ctx context.Context, owner, name string) (*entities.Repository, error)

	// CloneURL returns an HTTPS clone URL for the repository, with
	// embedded credentials when a token is configured.
	CloneURL(repo entities.Repository) string
}

//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/sparkyb/github-report/internal/domain/entities"
)

// RepositoryBuilder helps create test repositories with a fluent interface.
type RepositoryBuilder struct {
	*testkit.BaseBuilder
	name          string
	owner         string
	visibility    string
	defaultBranch string
	sizeKB        int64
	stars         int
	fork          bool
	archived      bool
}

// NewRepositoryBuilder creates a new repository builder with sensible defaults.
func NewRepositoryBuilder() *RepositoryBuilder {
	return &RepositoryBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		name:          "test-repo",
		owner:         "acme",
		visibility:    "public",
		defaultBranch: "main",
		sizeKB:        100,
		stars:         0,
		fork:          false,
		archived:      false,
	}
}

// WithName sets the repository name.
func (b *RepositoryBuilder) WithName(name string) *RepositoryBuilder {
	b.name = name
	return b
}

// WithOwner sets the owning user or organization.
func (b *RepositoryBuilder) WithOwner(owner string) *RepositoryBuilder {
	b.owner = owner
	return b
}

// WithVisibility sets the visibility ("public" or "private").
func (b *RepositoryBuilder) WithVisibility(visibility string) *RepositoryBuilder {
	b.visibility = visibility
	return b
}

// WithDefaultBranch sets the default branch name.
func (b *RepositoryBuilder) WithDefaultBranch(branch string) *RepositoryBuilder {
	b.defaultBranch = branch
	return b
}

// WithSizeKB sets the API-reported size in KiB.
func (b *RepositoryBuilder) WithSizeKB(sizeKB int64) *RepositoryBuilder {
	b.sizeKB = sizeKB
	return b
}

// WithStars sets the stargazer count.
func (b *RepositoryBuilder) WithStars(stars int) *RepositoryBuilder {
	b.stars = stars
	return b
}

// AsFork marks the repository as a fork.
func (b *RepositoryBuilder) AsFork() *RepositoryBuilder {
	b.fork = true
	return b
}

// AsArchived marks the repository as archived.
func (b *RepositoryBuilder) AsArchived() *RepositoryBuilder {
	b.archived = true
	return b
}

// Build creates the repository (satisfies testkit.Builder interface).
func (b *RepositoryBuilder) Build() interface{} {
	return b.BuildRepository()
}

// BuildRepository creates the repository with a concrete return type.
func (b *RepositoryBuilder) BuildRepository() entities.Repository {
	fullName := b.owner + "/" + b.name
	return entities.Repository{
		Name:          b.name,
		Owner:         b.owner,
		FullName:      fullName,
		Visibility:    b.visibility,
		DefaultBranch: b.defaultBranch,
		CloneURL:      fmt.Sprintf("https://example.com/%s.git", fullName),
		SizeKB:        b.sizeKB,
		Stars:         b.stars,
		Fork:          b.fork,
		Archived:      b.archived,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-repo"
	b.owner = "acme"
	b.visibility = "public"
	b.defaultBranch = "main"
	b.sizeKB = 100
	b.stars = 0
	b.fork = false
	b.archived = false
	return b
}

// Clone creates a deep copy of the RepositoryBuilder.
func (b *RepositoryBuilder) Clone() testkit.Builder {
	return &RepositoryBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:          b.name,
		owner:         b.owner,
		visibility:    b.visibility,
		defaultBranch: b.defaultBranch,
		sizeKB:        b.sizeKB,
		stars:         b.stars,
		fork:          b.fork,
		archived:      b.archived,
	}
}

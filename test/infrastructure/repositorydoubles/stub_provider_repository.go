//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/sparkyb/github-report/internal/domain/entities"
	"github.com/sparkyb/github-report/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
type SpyProviderRepository struct {
	// --- identity ---
	ProviderName string

	// --- ListRepositories ---
	Repositories        []entities.Repository
	RepositoriesByOwner map[string][]entities.Repository // owner -> result, overrides Repositories
	ListErr             error
	ListedOwners        []entities.Owner

	// --- ListOwn ---
	OwnRepositories []entities.Repository
	ListOwnErr      error
	ListOwnCalls    int

	// --- GetRepository ---
	Repository *entities.Repository
	GetErr     error
	GetCalls   []string // "owner/name" as requested
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string { return p.ProviderName }

func (p *SpyProviderRepository) ListRepositories(
	_ context.Context, owner string, kind entities.OwnerKind,
) ([]entities.Repository, error) {
	p.ListedOwners = append(p.ListedOwners, entities.Owner{Name: owner, Kind: kind})
	if p.RepositoriesByOwner != nil {
		if repos, ok := p.RepositoriesByOwner[owner]; ok {
			return repos, nil
		}
	}
	if p.ListErr != nil {
		return nil, p.ListErr
	}
	return p.Repositories, nil
}

func (p *SpyProviderRepository) ListOwn(_ context.Context) ([]entities.Repository, error) {
	p.ListOwnCalls++
	return p.OwnRepositories, p.ListOwnErr
}

func (p *SpyProviderRepository) GetRepository(
	_ context.Context, owner, name string,
) (*entities.Repository, error) {
	p.GetCalls = append(p.GetCalls, owner+"/"+name)
	if p.GetErr != nil {
		return nil, p.GetErr
	}
	if p.Repository != nil {
		return p.Repository, nil
	}
	return &entities.Repository{
		Name:     name,
		Owner:    owner,
		FullName: owner + "/" + name,
	}, nil
}

func (p *SpyProviderRepository) CloneURL(repo entities.Repository) string {
	if repo.CloneURL != "" {
		return repo.CloneURL
	}
	return fmt.Sprintf("https://example.com/%s.git", repo.FullName)
}

// DummyProviderRepository is a no-op implementation of repositories.ProviderRepository.
type DummyProviderRepository struct{}

var _ repositories.ProviderRepository = (*DummyProviderRepository)(nil)

func (d *DummyProviderRepository) Name() string { return "dummy" }

func (d *DummyProviderRepository) ListRepositories(
	_ context.Context, _ string, _ entities.OwnerKind,
) ([]entities.Repository, error) {
	return nil, nil
}

func (d *DummyProviderRepository) ListOwn(_ context.Context) ([]entities.Repository, error) {
	return nil, nil
}

func (d *DummyProviderRepository) GetRepository(
	_ context.Context, _, _ string,
) (*entities.Repository, error) {
	return nil, nil //nolint:nilnil // dummy no-op
}

func (d *DummyProviderRepository) CloneURL(_ entities.Repository) string { return "" }

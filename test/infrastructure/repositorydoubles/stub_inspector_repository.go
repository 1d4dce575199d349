//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/sparkyb/github-report/internal/domain/entities"
	"github.com/sparkyb/github-report/internal/domain/repositories"
)

// SpyInspectorRepository implements repositories.InspectorRepository as a configurable spy.
type SpyInspectorRepository struct {
	// --- Measure ---
	Measurement   *entities.SizeMeasurement
	MeasureErr    error
	MeasureErrFor map[string]error // full name -> error, overrides MeasureErr
	MeasuredRepos []entities.Repository
	CloneURLs     []string

	// --- MeasurePath ---
	PathMeasurement *entities.SizeMeasurement
	MeasurePathErr  error
	MeasuredPaths   []string
}

var _ repositories.InspectorRepository = (*SpyInspectorRepository)(nil)

func (i *SpyInspectorRepository) Measure(
	_ context.Context, repo entities.Repository, cloneURL string,
) (*entities.SizeMeasurement, error) {
	i.MeasuredRepos = append(i.MeasuredRepos, repo)
	i.CloneURLs = append(i.CloneURLs, cloneURL)
	if i.MeasureErrFor != nil {
		if err, ok := i.MeasureErrFor[repo.FullName]; ok {
			return nil, err
		}
	}
	if i.MeasureErr != nil {
		return nil, i.MeasureErr
	}
	if i.Measurement != nil {
		measurement := *i.Measurement
		return &measurement, nil
	}
	return &entities.SizeMeasurement{WorkingTreeBytes: 1024, LFSBytes: 0, LFSObjects: 0}, nil
}

func (i *SpyInspectorRepository) MeasurePath(
	_ context.Context, dir string,
) (*entities.SizeMeasurement, error) {
	i.MeasuredPaths = append(i.MeasuredPaths, dir)
	if i.MeasurePathErr != nil {
		return nil, i.MeasurePathErr
	}
	if i.PathMeasurement != nil {
		measurement := *i.PathMeasurement
		return &measurement, nil
	}
	return &entities.SizeMeasurement{WorkingTreeBytes: 1024, LFSBytes: 0, LFSObjects: 0}, nil
}

// DummyInspectorRepository is a no-op implementation of repositories.InspectorRepository.
type DummyInspectorRepository struct{}

var _ repositories.InspectorRepository = (*DummyInspectorRepository)(nil)

func (d *DummyInspectorRepository) Measure(
	_ context.Context, _ entities.Repository, _ string,
) (*entities.SizeMeasurement, error) {
	return nil, nil //nolint:nilnil // dummy no-op
}

func (d *DummyInspectorRepository) MeasurePath(
	_ context.Context, _ string,
) (*entities.SizeMeasurement, error) {
	return nil, nil //nolint:nilnil // dummy no-op
}

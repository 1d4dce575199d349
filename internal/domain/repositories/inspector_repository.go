package repositories

import (
	"context"

	"github.com/sparkyb/github-report/internal/domain/entities"
)

// InspectorRepository measures what the provider API does not expose:
// on-disk working tree size and LFS payload size. Implementations clone
// into an ephemeral directory that is removed on every exit path, and
// report failures as *entities.CloneError so a single bad repository
// never aborts the run.
type InspectorRepository interface {
	// Measure clones the repository from cloneURL and returns its
	// sizes. The context cancels an in-flight clone.
	Measure(
		ctx context.Context,
		repo entities.Repository,
		cloneURL string,
	) (*entities.SizeMeasurement, error)

	// MeasurePath measures an existing working copy in place, without
	// cloning. Used by the local mode.
	MeasurePath(ctx context.Context, dir string) (*entities.SizeMeasurement, error)
}

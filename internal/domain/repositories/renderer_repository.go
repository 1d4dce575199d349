package repositories

import (
	"io"

	"github.com/sparkyb/github-report/internal/domain/entities"
)

// RendererRepository writes a report in one output format. Renderers
// are pure: they never mutate the report, so the same report can be
// rendered in several formats.
type RendererRepository interface {
	// Name returns the format identifier (e.g. "table", "json").
	Name() string

	// Render writes the report to w.
	Render(w io.Writer, report *entities.Report) error
}

package render

import (
	"encoding/csv"
	"io"

	"github.com/sparkyb/github-report/internal/domain/entities"
	"github.com/sparkyb/github-report/internal/domain/repositories"
)

// CSVRendererRepository writes the report as RFC 4180 CSV with a
// header row. Missing values become empty cells.
type CSVRendererRepository struct{}

// NewCSVRendererRepository creates the CSV renderer.
func NewCSVRendererRepository() repositories.RendererRepository {
	return &CSVRendererRepository{}
}

func (r *CSVRendererRepository) Name() string { return "csv" }

func (r *CSVRendererRepository) Render(w io.Writer, report *entities.Report) error {
	fields, rows := grid(report)

	writer := csv.NewWriter(w)
	if err := writer.Write(fields); err != nil {
		return err
	}
	// WriteAll flushes before returning.
	return writer.WriteAll(rows)
}

package render

import (
	"fmt"
	"io"

	"github.com/sparkyb/github-report/internal/domain/entities"
	"github.com/sparkyb/github-report/internal/domain/repositories"
)

// ListRendererRepository writes the report as a human-oriented list.
// With a single value field the output is two aligned columns; with
// more it becomes one block per repository.
type ListRendererRepository struct{}

// NewListRendererRepository creates the list renderer.
func NewListRendererRepository() repositories.RendererRepository {
	return &ListRendererRepository{}
}

func (r *ListRendererRepository) Name() string { return "list" }

func (r *ListRendererRepository) Render(w io.Writer, report *entities.Report) error {
	fields, rows := grid(report)

	idIdx := 0
	for i, field := range fields {
		if field == report.IDField {
			idIdx = i
			break
		}
	}

	valueIdx := make([]int, 0, len(fields))
	for i := range fields {
		if i != idIdx {
			valueIdx = append(valueIdx, i)
		}
	}

	switch len(valueIdx) {
	case 0:
		for _, row := range rows {
			if _, err := fmt.Fprintln(w, row[idIdx]); err != nil {
				return err
			}
		}
	case 1:
		width := 0
		for _, row := range rows {
			if len(row[idIdx]) > width {
				width = len(row[idIdx])
			}
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, "%-*s %s\n", width, row[idIdx], row[valueIdx[0]]); err != nil {
				return err
			}
		}
	default:
		width := 0
		for _, i := range valueIdx {
			if len(fields[i]) > width {
				width = len(fields[i])
			}
		}
		for _, row := range rows {
			if _, err := fmt.Fprintln(w, row[idIdx]); err != nil {
				return err
			}
			for _, i := range valueIdx {
				if _, err := fmt.Fprintf(w, " - %*s: %s\n", width, fields[i], row[i]); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}

	return nil
}

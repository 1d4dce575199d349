// Package render holds one RendererRepository per output format. All
// renderers read the same assembled report, so switching formats never
// changes which repositories or sizes appear.
package render

import (
	"github.com/sparkyb/github-report/internal/domain/entities"
)

// outputFields resolves the report's field list; a nil list means every
// field (JSON without an explicit --fields).
func outputFields(report *entities.Report) []string {
	if report.Fields != nil {
		return report.Fields
	}
	return entities.AllFields
}

// grid renders the report into header and row strings shared by the
// line-oriented formats. The totals row, when present, is appended as
// a final data row like the original repository rows.
func grid(report *entities.Report) ([]string, [][]string) {
	fields := outputFields(report)

	rows := make([][]string, 0, len(report.Rows)+1)
	for _, row := range report.Rows {
		cells := make([]string, len(fields))
		for i, field := range fields {
			cells[i] = report.CellString(row, field)
		}
		rows = append(rows, cells)
	}

	if report.Totals != nil {
		cells := make([]string, len(fields))
		for i, field := range fields {
			cells[i] = entities.DisplayString(report.TotalValue(field))
		}
		rows = append(rows, cells)
	}

	return fields, rows
}

package render

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/sparkyb/github-report/internal/domain/entities"
	"github.com/sparkyb/github-report/internal/domain/repositories"
)

// TableRendererRepository writes the report as an aligned text table.
type TableRendererRepository struct{}

// NewTableRendererRepository creates the table renderer.
func NewTableRendererRepository() repositories.RendererRepository {
	return &TableRendererRepository{}
}

func (r *TableRendererRepository) Name() string { return "table" }

// Render writes an aligned table with a header line, in the style of a
// plain column report rather than a boxed grid.
func (r *TableRendererRepository) Render(w io.Writer, report *entities.Report) error {
	fields, rows := grid(report)

	table := tablewriter.NewWriter(w)
	table.SetHeader(fields)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("-")
	table.SetHeaderLine(true)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(rows)
	table.Render()
	return nil
}

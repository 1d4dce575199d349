package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sparkyb/github-report/internal/domain/entities"
	"github.com/sparkyb/github-report/internal/domain/repositories"
)

const jsonIndent = "  "

// JSONRendererRepository writes the report as an indented JSON array,
// one object per repository, keys in field order.
type JSONRendererRepository struct{}

// NewJSONRendererRepository creates the JSON renderer.
func NewJSONRendererRepository() repositories.RendererRepository {
	return &JSONRendererRepository{}
}

func (r *JSONRendererRepository) Name() string { return "json" }

func (r *JSONRendererRepository) Render(w io.Writer, report *entities.Report) error {
	fields := outputFields(report)

	rows := make([]orderedRow, 0, len(report.Rows)+1)
	for _, row := range report.Rows {
		values := make([]any, 0, len(fields))
		for _, field := range fields {
			values = append(values, report.Cell(row, field))
		}
		rows = append(rows, orderedRow{fields: fields, values: values})
	}

	if report.Totals != nil {
		values := make([]any, 0, len(fields))
		for _, field := range fields {
			values = append(values, report.TotalValue(field))
		}
		rows = append(rows, orderedRow{fields: fields, values: values})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", jsonIndent)
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode report as JSON: %w", err)
	}
	return nil
}

// orderedRow marshals one report row with its keys in field order, which
// encoding/json does not do for maps.
type orderedRow struct {
	fields []string
	values []any
}

func (o orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(jsonValue(o.values[i]))
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// jsonValue maps zero timestamps to null so rows never carry the
// "0001-01-01" placeholder.
func jsonValue(value any) any {
	if t, ok := value.(time.Time); ok {
		if t.IsZero() {
			return nil
		}
		return t.UTC()
	}
	return value
}

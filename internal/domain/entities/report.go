package entities

import (
	"sort"
	"strings"
	"time"
)

// RenderOptions holds the output shaping options shared by every format.
type RenderOptions struct {
	Format   string
	Fields   []string // empty means format-specific defaults
	Sort     string   // field name, "-" prefix for descending
	Humanize bool
	Totals   bool
	LFS      bool // whether measurements were requested
}

// ReportRow pairs a repository with the outcome of its inspection.
type ReportRow struct {
	Repository  Repository
	Measurement *SizeMeasurement
	Status      string
}

// Report is the fully assembled output of a run: rows sorted, the field
// list resolved, totals accumulated. Renderers only read it.
type Report struct {
	Fields   []string // canonical names, render order
	IDField  string   // the field identifying a row ("name" or "full_name")
	Rows     []ReportRow
	Totals   map[string]any // nil unless totals were requested
	Humanize bool
}

// BuildReport sorts the rows, resolves the output field list for the
// requested format, and accumulates totals. It never drops a row: the
// report has exactly one row per repository passed in.
func BuildReport(rows []ReportRow, opts RenderOptions) *Report {
	sortRows(rows, opts.Sort)

	multiOwner := countOwners(rows) > 1
	fields := resolveFields(opts, multiOwner)

	idField := "name"
	if multiOwner {
		idField = "full_name"
	}
	if fields != nil {
		found := false
		for _, f := range fields {
			if f == "name" || f == "full_name" {
				idField = f
				found = true
				break
			}
		}
		if !found {
			fields = append([]string{idField}, fields...)
		}
	}

	report := &Report{
		Fields:   fields,
		IDField:  idField,
		Rows:     rows,
		Humanize: opts.Humanize,
	}

	if opts.Totals {
		report.Totals = sumTotals(rows, fields, idField)
	}

	return report
}

// Cell returns the rendered value of one field of one row, with
// humanization applied when the report asks for it.
func (r *Report) Cell(row ReportRow, field string) any {
	value := row.Value(field)
	if r.Humanize {
		value = HumanizeValue(field, value)
	}
	return value
}

// CellString is Cell rendered as text for the line-oriented formats.
func (r *Report) CellString(row ReportRow, field string) string {
	return DisplayString(r.Cell(row, field))
}

// TotalValue returns the totals-row value for a field, humanized like
// the data cells. The identifying field carries the "Totals" label.
func (r *Report) TotalValue(field string) any {
	value, ok := r.Totals[ResolveField(field)]
	if !ok {
		return nil
	}
	if r.Humanize {
		value = HumanizeValue(field, value)
	}
	return value
}

// resolveFields returns the canonical output field list, or nil for
// "every field" (JSON without an explicit list).
func resolveFields(opts RenderOptions, multiOwner bool) []string {
	if len(opts.Fields) > 0 {
		fields := make([]string, 0, len(opts.Fields))
		for _, f := range opts.Fields {
			fields = append(fields, ResolveField(strings.TrimSpace(f)))
		}
		return fields
	}

	if opts.Format == "json" {
		return nil
	}

	defaults := defaultFields[opts.Format]

	// With repositories from several owners, bare names stop being
	// unique, so "name" becomes "full_name" unless the defaults already
	// carry an owner column.
	swapName := multiOwner
	for _, f := range defaults {
		if f == "owner" || f == "full_name" {
			swapName = false
			break
		}
	}

	fields := make([]string, 0, len(defaults))
	for _, f := range defaults {
		if f == "lfs" && !opts.LFS {
			continue
		}
		if f == "name" && swapName {
			f = "full_name"
		}
		fields = append(fields, ResolveField(f))
	}
	return fields
}

func countOwners(rows []ReportRow) int {
	owners := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		owners[row.Repository.Owner] = struct{}{}
	}
	return len(owners)
}

// sortRows orders rows by the given field, ascending unless prefixed
// with "-". Ties fall back to full_name ascending so the order is
// deterministic regardless of API response order.
func sortRows(rows []ReportRow, field string) {
	if field == "" {
		field = "full_name"
	}
	descending := strings.HasPrefix(field, "-")
	field = strings.TrimPrefix(field, "-")

	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareValues(rows[i].Value(field), rows[j].Value(field))
		if cmp == 0 {
			return rows[i].Repository.FullName < rows[j].Repository.FullName
		}
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareValues orders two field values of the same kind. Nil sorts
// before everything so unmeasured rows group together.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case !av && bv:
				return -1
			case av && !bv:
				return 1
			}
			return 0
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}

	return strings.Compare(DisplayString(a), DisplayString(b))
}

// sumTotals adds up every numeric field across the rows. The id field
// gets the "Totals" label so the row is recognizable in output.
func sumTotals(rows []ReportRow, fields []string, idField string) map[string]any {
	if fields == nil {
		fields = AllFields
	}

	totals := make(map[string]any, len(fields))
	totals[ResolveField(idField)] = "Totals"

	for _, field := range fields {
		canonical := ResolveField(field)
		if canonical == ResolveField(idField) {
			continue
		}
		sum := int64(0)
		counted := false
		for _, row := range rows {
			if n, ok := numericValue(row.Value(canonical)); ok {
				sum += n
				counted = true
			}
		}
		if counted {
			totals[canonical] = sum
		}
	}

	return totals
}

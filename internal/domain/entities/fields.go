package entities

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// Canonical field names, in the order JSON output emits them when no
// explicit field list is given.
//
//nolint:gochecknoglobals // static field catalog
var AllFields = []string{
	"id",
	"name",
	"full_name",
	"owner",
	"description",
	"visibility",
	"default_branch",
	"clone_url",
	"ssh_url",
	"html_url",
	"fork",
	"archived",
	"created_at",
	"updated_at",
	"pushed_at",
	"forks_count",
	"stargazers_count",
	"watchers_count",
	"subscribers_count",
	"open_issues_count",
	"size",
	"disk_usage",
	"lfs",
	"lfs_objects",
	"status",
	"provider",
}

// fieldAliases maps the short names accepted on the command line to
// canonical field names.
//
//nolint:gochecknoglobals // static field catalog
var fieldAliases = map[string]string{
	"forks":       "forks_count",
	"stars":       "stargazers_count",
	"watchers":    "watchers_count",
	"subscribers": "subscribers_count",
	"open_issues": "open_issues_count",
	"created":     "created_at",
	"updated":     "updated_at",
	"pushed":      "pushed_at",
}

// defaultFields holds the per-format default field lists. JSON has no
// entry: without an explicit --fields it emits every field.
//
//nolint:gochecknoglobals // static field catalog
var defaultFields = map[string][]string{
	"table": {"name", "size", "lfs"},
	"list":  {"name", "size", "lfs"},
	"csv": {
		"owner", "name", "description",
		"created", "updated", "pushed",
		"forks", "stars", "watchers", "subscribers",
		"size", "lfs",
	},
}

// ResolveField maps a user-supplied field name to its canonical form.
// Unknown names are returned unchanged; Value reports them as nil.
func ResolveField(name string) string {
	if canonical, ok := fieldAliases[name]; ok {
		return canonical
	}
	return name
}

// Value returns the raw value of a field for this row. Field names may
// use aliases. Fields without a value (an unmeasured lfs, an unknown
// name) yield nil so renderers can distinguish "empty" from zero.
func (r ReportRow) Value(field string) any {
	switch ResolveField(field) {
	case "id":
		return r.Repository.ID
	case "name":
		return r.Repository.Name
	case "full_name":
		return r.Repository.FullName
	case "owner":
		return r.Repository.Owner
	case "description":
		return r.Repository.Description
	case "visibility":
		return r.Repository.Visibility
	case "default_branch":
		return r.Repository.DefaultBranch
	case "clone_url":
		return r.Repository.CloneURL
	case "ssh_url":
		return r.Repository.SSHURL
	case "html_url":
		return r.Repository.HTMLURL
	case "fork":
		return r.Repository.Fork
	case "archived":
		return r.Repository.Archived
	case "created_at":
		return r.Repository.CreatedAt
	case "updated_at":
		return r.Repository.UpdatedAt
	case "pushed_at":
		return r.Repository.PushedAt
	case "forks_count":
		return int64(r.Repository.Forks)
	case "stargazers_count":
		return int64(r.Repository.Stars)
	case "watchers_count":
		return int64(r.Repository.Watchers)
	case "subscribers_count":
		return int64(r.Repository.Subscribers)
	case "open_issues_count":
		return int64(r.Repository.OpenIssues)
	case "size":
		return r.Repository.SizeKB
	case "disk_usage":
		if r.Measurement == nil {
			return nil
		}
		return r.Measurement.WorkingTreeBytes
	case "lfs":
		if r.Measurement == nil {
			return nil
		}
		return r.Measurement.LFSBytes
	case "lfs_objects":
		if r.Measurement == nil {
			return nil
		}
		return int64(r.Measurement.LFSObjects)
	case "status":
		return r.Status
	case "provider":
		return r.Repository.ProviderName
	default:
		return nil
	}
}

// HumanizeValue converts a raw field value into its human-readable form
// where one exists: byte sizes for size fields, comma grouping for
// counts, relative phrasing for timestamps. Other values pass through.
func HumanizeValue(field string, value any) any {
	if value == nil {
		return nil
	}

	switch ResolveField(field) {
	case "size":
		// API sizes are KiB; scale up before rendering.
		if kb, ok := value.(int64); ok {
			return humanize.IBytes(uint64(kb) * 1024)
		}
	case "disk_usage", "lfs":
		if b, ok := value.(int64); ok {
			return humanize.IBytes(uint64(b))
		}
	case "forks_count", "stargazers_count", "watchers_count",
		"subscribers_count", "open_issues_count", "lfs_objects":
		if n, ok := value.(int64); ok {
			return humanize.Comma(n)
		}
	case "created_at", "updated_at", "pushed_at":
		if t, ok := value.(time.Time); ok {
			return humanize.Time(t)
		}
	}
	return value
}

// DisplayString renders a raw field value as text for the table, list,
// and csv formats. Nil becomes the empty string.
func DisplayString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// numericValue reports whether a field value participates in totals,
// returning its numeric form. Booleans count as 0/1 so a totals row
// over "fork" counts forks.
func numericValue(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

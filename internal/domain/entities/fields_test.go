//go:build unit

package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sparkyb/github-report/internal/domain/entities"
)

func TestReportRowValue(t *testing.T) {
	t.Parallel()

	t.Run("should expose measurement fields only when measured", func(t *testing.T) {
		t.Parallel()

		// given
		measured := entities.ReportRow{
			Repository: entities.Repository{Name: "a", Owner: "acme", FullName: "acme/a"},
			Measurement: &entities.SizeMeasurement{
				WorkingTreeBytes: 2048,
				LFSBytes:         512,
				LFSObjects:       3,
			},
			Status: entities.StatusOK,
		}
		unmeasured := entities.ReportRow{
			Repository: entities.Repository{Name: "b", Owner: "acme", FullName: "acme/b"},
			Status:     entities.StatusUnavailable,
		}

		// when / then
		assert.Equal(t, int64(2048), measured.Value("disk_usage"))
		assert.Equal(t, int64(512), measured.Value("lfs"))
		assert.Equal(t, int64(3), measured.Value("lfs_objects"))
		assert.Nil(t, unmeasured.Value("disk_usage"))
		assert.Nil(t, unmeasured.Value("lfs"))
		assert.Nil(t, unmeasured.Value("lfs_objects"))
	})

	t.Run("should resolve aliases", func(t *testing.T) {
		t.Parallel()

		// given
		r := entities.ReportRow{
			Repository: entities.Repository{Name: "a", Stars: 7, Forks: 2},
		}

		// when / then
		assert.Equal(t, int64(7), r.Value("stars"))
		assert.Equal(t, int64(2), r.Value("forks"))
	})

	t.Run("should return nil for unknown fields", func(t *testing.T) {
		t.Parallel()

		// given
		r := entities.ReportRow{Repository: entities.Repository{Name: "a"}}

		// when / then
		assert.Nil(t, r.Value("no_such_field"))
	})
}

func TestResolveField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"should map stars to its canonical name", "stars", "stargazers_count"},
		{"should map created to its canonical name", "created", "created_at"},
		{"should leave canonical names unchanged", "full_name", "full_name"},
		{"should leave unknown names unchanged", "bogus", "bogus"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, entities.ResolveField(test.input))
		})
	}
}

func TestHumanizeValue(t *testing.T) {
	t.Parallel()

	t.Run("should scale api sizes from kibibytes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "100 KiB", entities.HumanizeValue("size", int64(100)))
		assert.Equal(t, "1.0 MiB", entities.HumanizeValue("size", int64(1024)))
	})

	t.Run("should render measured byte fields directly", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.0 MiB", entities.HumanizeValue("disk_usage", int64(1048576)))
		assert.Equal(t, "512 B", entities.HumanizeValue("lfs", int64(512)))
	})

	t.Run("should group counts with commas", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1,234,567", entities.HumanizeValue("stargazers_count", int64(1234567)))
		assert.Equal(t, "1,234,567", entities.HumanizeValue("stars", int64(1234567)))
	})

	t.Run("should phrase timestamps relatively", func(t *testing.T) {
		t.Parallel()
		value := entities.HumanizeValue("updated_at", time.Now().Add(-2*time.Hour))
		assert.Equal(t, "2 hours ago", value)
	})

	t.Run("should pass other values through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "ok", entities.HumanizeValue("status", "ok"))
		assert.Equal(t, true, entities.HumanizeValue("fork", true))
		assert.Nil(t, entities.HumanizeValue("size", nil))
	})
}

func TestDisplayString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"should render nil as empty", nil, ""},
		{"should pass strings through", "ok", "ok"},
		{"should render integers", int64(42), "42"},
		{"should render booleans", true, "true"},
		{"should render zero timestamps as empty", time.Time{}, ""},
		{
			"should render timestamps as RFC 3339 in UTC",
			time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60)),
			"2024-05-01T10:00:00Z",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, entities.DisplayString(test.value))
		})
	}
}

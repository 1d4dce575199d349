//go:build unit

package entities_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sparkyb/github-report/internal/domain/entities"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			"should describe rejected credentials",
			&entities.AuthenticationError{Provider: "github", StatusCode: 401},
			"github authentication failed (HTTP 401): check your token",
		},
		{
			"should include the retry delay when the server sent one",
			&entities.RateLimitError{Provider: "github", RetryAfter: 30 * time.Second},
			"github rate limit exceeded, retry after 30 seconds",
		},
		{
			"should omit the retry delay when the server sent none",
			&entities.RateLimitError{Provider: "gitlab"},
			"gitlab rate limit exceeded",
		},
		{
			"should name the missing owner",
			&entities.NotFoundError{Owner: "acme"},
			`owner "acme" not found`,
		},
		{
			"should name the missing repository",
			&entities.NotFoundError{Owner: "acme", Repo: "ghost"},
			"repository acme/ghost not found",
		},
		{
			"should name the repository that failed to clone",
			&entities.CloneError{Repo: "acme/tool", Err: errors.New("exit status 128")},
			"failed to clone acme/tool: exit status 128",
		},
		{
			"should name the unwritable output path",
			&entities.OutputError{Path: "/tmp/report.csv", Err: errors.New("permission denied")},
			"failed to write report to /tmp/report.csv: permission denied",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	t.Run("should expose the clone cause", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("exit status 128")
		err := &entities.CloneError{Repo: "acme/tool", Err: cause}

		// when / then
		assert.ErrorIs(t, err, cause)
	})

	t.Run("should expose the output cause", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("no space left on device")
		err := &entities.OutputError{Path: "report.json", Err: cause}

		// when / then
		assert.ErrorIs(t, err, cause)
	})
}

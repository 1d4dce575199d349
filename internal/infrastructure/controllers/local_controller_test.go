//go:build unit

package controllers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkyb/github-report/internal/infrastructure/controllers"
	"github.com/sparkyb/github-report/test/domain/commanddoubles"
)

func newLocalSetup(t *testing.T) (*cobra.Command, *commanddoubles.StubLocalCommand, *controllers.LocalController) {
	t.Helper()

	stub := &commanddoubles.StubLocalCommand{}
	controller := controllers.NewLocalController(stub)

	cmd := &cobra.Command{Use: "local"}
	cmd.SetContext(context.Background())
	controller.AddFlags(cmd)

	return cmd, stub, controller
}

func TestLocalControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should default to the current directory and the measured fields", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, stub, controller := newLocalSetup(t)
		require.NoError(t, cmd.ParseFlags(nil))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		require.Equal(t, 1, stub.ExecuteCallCount)
		opts := stub.LastOpts
		assert.Equal(t, ".", opts.Path)
		assert.Equal(t, "list", opts.Render.Format)
		assert.Equal(t, []string{"name", "disk_usage", "lfs"}, opts.Render.Fields)
		assert.True(t, opts.Render.LFS)
	})

	t.Run("should accept an explicit path", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, stub, controller := newLocalSetup(t)
		require.NoError(t, cmd.ParseFlags(nil))

		// when
		err := controller.Execute(cmd, []string{"/srv/checkout"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "/srv/checkout", stub.LastOpts.Path)
	})

	t.Run("should leave the json field list open", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, stub, controller := newLocalSetup(t)
		require.NoError(t, cmd.ParseFlags([]string{"--format", "json"}))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "json", stub.LastOpts.Render.Format)
		assert.Empty(t, stub.LastOpts.Render.Fields)
	})

	t.Run("should pass fields humanize and output through", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, stub, controller := newLocalSetup(t)
		require.NoError(t, cmd.ParseFlags([]string{
			"--fields", "name,disk_usage",
			"--humanize",
			"--output", "local.json",
		}))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		opts := stub.LastOpts
		assert.Equal(t, []string{"name", "disk_usage"}, opts.Render.Fields)
		assert.True(t, opts.Render.Humanize)
		assert.Equal(t, "local.json", opts.Output)
	})

	t.Run("should propagate command errors", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, stub, controller := newLocalSetup(t)
		stub.ExecuteErr = errors.New("not a repository")
		require.NoError(t, cmd.ParseFlags(nil))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a repository")
	})
}

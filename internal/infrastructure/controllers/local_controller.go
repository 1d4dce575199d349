package controllers

import (
	"github.com/spf13/cobra"

	"github.com/sparkyb/github-report/internal/domain/commands"
	"github.com/sparkyb/github-report/internal/domain/entities"
)

// LocalController handles the "local" subcommand: report on an
// existing working copy without any API access.
type LocalController struct {
	command commands.Local
}

// NewLocalController creates a new LocalController.
func NewLocalController(command commands.Local) *LocalController {
	return &LocalController{command: command}
}

// GetBind returns the Cobra command metadata for the local controller.
func (it *LocalController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "local [path]",
		Short: "Report on a local working copy",
		Long: `Measure an existing clone instead of going through an API: working
tree size and LFS payload are read from the directory itself, and the
repository identity is inferred from the origin remote when there is
one.`,
	}
}

// Execute runs the local mode.
func (it *LocalController) Execute(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	format, _ := flags.GetString("format")
	if format == "" {
		format = "list"
	}

	rawFields, _ := flags.GetString("fields")
	fields := splitFields(rawFields)
	if len(fields) == 0 && format != "json" {
		// Local reports have no API metadata worth defaulting to, only
		// the measured sizes.
		fields = []string{"name", "disk_usage", "lfs"}
	}

	humanize, _ := flags.GetBool("humanize")
	output, _ := flags.GetString("output")

	return it.command.Execute(cmd.Context(), commands.LocalOptions{
		Path: path,
		Render: entities.RenderOptions{
			Format:   format,
			Fields:   fields,
			Humanize: humanize,
			LFS:      true,
		},
		Output: output,
	})
}

// AddFlags adds the local-mode flags to the given Cobra command.
func (it *LocalController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "",
		"Output format: table, list, csv, or json (default: list)")
	cmd.Flags().String("fields", "", "Comma-separated list of fields to show")
	cmd.Flags().BoolP("humanize", "H", false,
		"Convert sizes, counts, and dates to human-readable form")
	cmd.Flags().String("output", "", "Write the report to this file instead of stdout")
}

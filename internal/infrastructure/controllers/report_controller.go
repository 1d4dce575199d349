package controllers

import (
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sparkyb/github-report/config"
	"github.com/sparkyb/github-report/internal/domain/commands"
	"github.com/sparkyb/github-report/internal/domain/entities"
)

// ReportController handles the root command: list the repositories of
// an owner and report their sizes.
type ReportController struct {
	command commands.Report
}

// NewReportController creates a new ReportController.
func NewReportController(command commands.Report) *ReportController {
	return &ReportController{command: command}
}

// GetBind returns the Cobra command metadata for the report controller.
func (it *ReportController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "github-report [owner...]",
		Short: "Report repository sizes for a user or organization",
		Long: `Lists every repository of a GitHub user or organization and reports
its size: the API-reported size and, with --lfs, the working tree and
Git LFS payload measured from a shallow clone.

The report renders as a table, list, CSV, or JSON, to stdout or a file.

Usage modes:
  github-report myorg            Report on an organization (or user)
  github-report -u someuser      Report on a user
  github-report -r owner/name    Report on a single repository
  github-report                  Report on your own repositories (token required)
  github-report local [path]     Measure an existing local clone`,
	}
}

// Execute translates flags and arguments into report options and runs
// the report command.
func (it *ReportController) Execute(cmd *cobra.Command, args []string) error {
	opts, err := it.buildOptions(cmd, args)
	if err != nil {
		return err
	}
	return it.command.Execute(cmd.Context(), opts)
}

// buildOptions merges the config file with command-line flags; flags
// always win.
func (it *ReportController) buildOptions(
	cmd *cobra.Command,
	args []string,
) (commands.ReportOptions, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return commands.ReportOptions{}, err
	}

	if flags.Changed("provider") {
		cfg.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if csvFlag, _ := flags.GetBool("csv"); csvFlag {
		cfg.Format = "csv"
	}
	if jsonFlag, _ := flags.GetBool("json"); jsonFlag {
		cfg.Format = "json"
	}
	if flags.Changed("fields") {
		raw, _ := flags.GetString("fields")
		cfg.Fields = splitFields(raw)
	}
	if flags.Changed("sort") {
		cfg.Sort, _ = flags.GetString("sort")
	}
	if flags.Changed("visibility") {
		cfg.Visibility, _ = flags.GetString("visibility")
	}
	if flags.Changed("lfs") {
		cfg.LFS, _ = flags.GetBool("lfs")
	}
	if flags.Changed("humanize") {
		cfg.Humanize, _ = flags.GetBool("humanize")
	}
	if flags.Changed("totals") {
		cfg.Totals, _ = flags.GetBool("totals")
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}

	if validateErr := config.Validate(cfg); validateErr != nil {
		return commands.ReportOptions{}, validateErr
	}

	warnUnmeasuredFields(cfg)

	token, err := it.resolveToken(cmd, cfg)
	if err != nil {
		return commands.ReportOptions{}, err
	}

	repoArg, _ := flags.GetString("repo")

	return commands.ReportOptions{
		Provider:   cfg.Provider,
		Owners:     collectOwners(cmd, args, cfg),
		Repo:       repoArg,
		Token:      token,
		Visibility: cfg.Visibility,
		LFS:        cfg.LFS,
		Render: entities.RenderOptions{
			Format:   cfg.Format,
			Fields:   cfg.Fields,
			Sort:     cfg.Sort,
			Humanize: cfg.Humanize,
			Totals:   cfg.Totals,
			LFS:      cfg.LFS,
		},
		Output: cfg.Output,
	}, nil
}

// resolveToken returns the auth token by precedence: --token flag,
// --token-file flag, config token, config token file. The environment
// fallback happens later in the command.
func (it *ReportController) resolveToken(
	cmd *cobra.Command,
	cfg *config.Config,
) (string, error) {
	flags := cmd.Flags()

	if flags.Changed("token") {
		token, _ := flags.GetString("token")
		return token, nil
	}

	if flags.Changed("token-file") {
		path, _ := flags.GetString("token-file")
		token, err := readTokenFile(path)
		if err != nil {
			return "", err
		}
		return token, nil
	}

	if cfg.Token != "" {
		return cfg.Token, nil
	}

	// The default token file (.token) is optional: reporting on public
	// repositories needs no credentials at all.
	if cfg.TokenFile != "" {
		if _, statErr := os.Stat(cfg.TokenFile); statErr == nil {
			return readTokenFile(cfg.TokenFile)
		}
	}

	return "", nil
}

// collectOwners gathers owners from positional arguments, the --user
// and --org flags, and finally the config file.
func collectOwners(cmd *cobra.Command, args []string, cfg *config.Config) []entities.Owner {
	flags := cmd.Flags()

	owners := make([]entities.Owner, 0, len(args))
	for _, arg := range args {
		owners = append(owners, entities.Owner{Name: arg, Kind: entities.OwnerAny})
	}

	users, _ := flags.GetStringSlice("user")
	for _, user := range users {
		owners = append(owners, entities.Owner{Name: user, Kind: entities.OwnerUser})
	}

	orgs, _ := flags.GetStringSlice("org")
	for _, org := range orgs {
		owners = append(owners, entities.Owner{Name: org, Kind: entities.OwnerOrg})
	}

	if len(owners) == 0 && cfg.Owner != "" {
		owners = append(owners, entities.Owner{Name: cfg.Owner, Kind: entities.OwnerAny})
	}

	return owners
}

// warnUnmeasuredFields flags a field selection that asks for LFS data
// without the clone step that produces it.
func warnUnmeasuredFields(cfg *config.Config) {
	if cfg.LFS {
		return
	}
	for _, field := range cfg.Fields {
		if entities.ResolveField(field) == "lfs" {
			logger.Warn("lfs included in fields but --lfs not specified")
			return
		}
	}
}

// readTokenFile reads and trims a token file.
func readTokenFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	logger.Debugf("Read token from file %q", path)
	return strings.TrimSpace(string(data)), nil
}

// splitFields turns a comma-separated flag value into a trimmed list.
func splitFields(raw string) []string {
	var fields []string
	for _, field := range strings.Split(raw, ",") {
		if field = strings.TrimSpace(field); field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}

// AddFlags adds the report flags to the given Cobra command.
func (it *ReportController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("user", "u", nil,
		"User whose repositories should be listed (repeatable)")
	cmd.Flags().StringSliceP("org", "o", nil,
		"Organization whose repositories should be listed (repeatable)")
	cmd.Flags().StringP("repo", "r", "",
		"Report on a single repository (owner/name, or name with an owner argument)")
	cmd.Flags().StringP("token", "t", "", "Personal access token")
	cmd.Flags().String("token-file", "",
		"File to read the personal access token from (default: .token, when present)")
	cmd.Flags().String("provider", "", "Repository hosting provider (github or gitlab)")
	cmd.Flags().Bool("lfs", false, "Clone each repository to measure disk and LFS usage")
	cmd.Flags().StringP("sort", "s", "",
		"Field to sort by; prefix with - to sort descending (default: full_name)")
	cmd.Flags().String("fields", "", "Comma-separated list of fields to show")
	cmd.Flags().String("visibility", "",
		"Only include repositories with this visibility (all, public, or private)")
	cmd.Flags().BoolP("humanize", "H", false,
		"Convert sizes, counts, and dates to human-readable form")
	cmd.Flags().Bool("totals", false, "Append a totals row")
	cmd.Flags().StringP("format", "f", "",
		"Output format: table, list, csv, or json (default: list)")
	cmd.Flags().Bool("csv", false, "Shorthand for --format csv")
	cmd.Flags().Bool("json", false, "Shorthand for --format json")
	cmd.Flags().String("output", "", "Write the report to this file instead of stdout")

	cmd.MarkFlagsMutuallyExclusive("user", "org")
	cmd.MarkFlagsMutuallyExclusive("token", "token-file")
	cmd.MarkFlagsMutuallyExclusive("format", "csv", "json")
}

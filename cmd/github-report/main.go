package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sparkyb/github-report/internal"
	"github.com/sparkyb/github-report/internal/infrastructure/controllers"
)

func buildRootCommand(reportController *controllers.ReportController) *cobra.Command {
	bind := reportController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, _ []string) error {
			return configureLogging(command)
		},
		RunE: func(command *cobra.Command, args []string) error {
			return reportController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().BoolP("quiet", "q", false,
		"Only log warnings and errors")
	cmd.PersistentFlags().String("log", "",
		"Mirror the log output to a file")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Report-specific flags live on the root command itself
	reportController.AddFlags(cmd)

	return cmd
}

// configureLogging applies the verbosity flags and the optional log
// file mirror before any command runs.
func configureLogging(cmd *cobra.Command) error {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		logger.SetLevel(logger.WarnLevel)
	}

	logPath, _ := cmd.Flags().GetString("log")
	if logPath == "" {
		return nil
	}
	// Kept open for the lifetime of the process.
	file, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, file))
	return nil
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		if _, ok := controller.(*controllers.ReportController); ok {
			continue // already bound to the root command
		}

		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if lc, ok := ctrl.(*controllers.LocalController); ok {
			lc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// An interrupt cancels the context so in-flight listings and clones
	// stop between repositories and temp directories still get removed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Inject controllers via DIG
	reportController := injectReportController()
	cobraRoot := buildRootCommand(reportController)

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.ExecuteContext(ctx); err != nil {
		logger.Fatalf("Error executing 'github-report': %s", err)
	}
}

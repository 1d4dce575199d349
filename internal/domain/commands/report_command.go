package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/sparkyb/github-report/internal/domain/entities"
	"github.com/sparkyb/github-report/internal/domain/repositories"
	infraRepos "github.com/sparkyb/github-report/internal/infrastructure/repositories"
)

const (
	providerGitHub = "github"
	providerGitLab = "gitlab"

	outputFileMode = 0o644
)

// Report is the interface for the report command (the root mode).
type Report interface {
	Execute(ctx context.Context, opts ReportOptions) error
}

// ReportOptions holds runtime options for a single report run.
type ReportOptions struct {
	Provider   string
	Owners     []entities.Owner
	Repo       string // single repository mode: "owner/name", or "name" with one owner
	Token      string
	Visibility string
	LFS        bool // clone and measure each repository
	Render     entities.RenderOptions
	Output     string    // file path; empty means stdout
	Stdout     io.Writer // defaults to os.Stdout
}

// ReportCommand orchestrates the full reporting flow:
// list repositories -> measure sizes -> build report -> render.
type ReportCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	rendererRegistry *infraRepos.RendererRegistry
	inspector        repositories.InspectorRepository
}

// NewReportCommand creates a new ReportCommand with the given registries
// and inspector.
func NewReportCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	rendererRegistry *infraRepos.RendererRegistry,
	inspector repositories.InspectorRepository,
) *ReportCommand {
	return &ReportCommand{
		providerRegistry: providerRegistry,
		rendererRegistry: rendererRegistry,
		inspector:        inspector,
	}
}

// Execute runs one report. Listing errors abort; per-repository clone
// failures only mark their row unavailable, so the report always has
// one row per repository found.
func (it *ReportCommand) Execute(ctx context.Context, opts ReportOptions) error {
	token := opts.Token
	if token == "" {
		token = resolveTokenFromEnv(opts.Provider)
	}
	if token == "" && len(opts.Owners) == 0 && opts.Repo == "" {
		return errors.New(
			"nothing to report on: pass an owner, --repo, or a token to list your own repositories",
		)
	}

	provider, err := it.providerRegistry.Get(opts.Provider, token)
	if err != nil {
		return err
	}

	repos, err := it.fetchRepositories(ctx, provider, opts)
	if err != nil {
		return err
	}

	repos = filterByVisibility(repos, opts.Visibility)
	logger.Infof("Reporting on %d repositories", len(repos))

	rows, err := it.buildRows(ctx, provider, repos, opts.LFS)
	if err != nil {
		return err
	}

	report := entities.BuildReport(rows, opts.Render)
	return renderReport(it.rendererRegistry, report, opts.Render.Format, opts.Output, opts.Stdout)
}

// fetchRepositories returns the complete descriptor list for the run:
// a single repository, everything owned by the given owners, or the
// authenticated user's own repositories when no owner was named.
func (it *ReportCommand) fetchRepositories(
	ctx context.Context,
	provider repositories.ProviderRepository,
	opts ReportOptions,
) ([]entities.Repository, error) {
	if opts.Repo != "" {
		owner, name := splitRepoArg(opts.Repo, opts.Owners)
		if owner != "" && len(opts.Owners) == 1 && owner != opts.Owners[0].Name {
			return nil, fmt.Errorf(
				"repository owner %q does not match the requested owner %q",
				owner, opts.Owners[0].Name,
			)
		}
		repo, err := provider.GetRepository(ctx, owner, name)
		if err != nil {
			return nil, err
		}
		return []entities.Repository{*repo}, nil
	}

	if len(opts.Owners) == 0 {
		logger.Info("Listing repositories of the authenticated user...")
		return provider.ListOwn(ctx)
	}

	var all []entities.Repository
	seen := make(map[string]struct{})
	for _, owner := range opts.Owners {
		logger.Infof("Listing repositories of %q...", owner.Name)

		repos, err := provider.ListRepositories(ctx, owner.Name, owner.Kind)
		if err != nil {
			return nil, err
		}
		logger.Infof("Found %d repositories in %q", len(repos), owner.Name)

		for _, repo := range repos {
			if _, dup := seen[repo.FullName]; dup {
				continue
			}
			seen[repo.FullName] = struct{}{}
			all = append(all, repo)
		}
	}
	return all, nil
}

// buildRows pairs every repository with its measurement outcome. With
// measuring off the rows carry the skipped status, so the report stays
// explicit about what was not inspected.
func (it *ReportCommand) buildRows(
	ctx context.Context,
	provider repositories.ProviderRepository,
	repos []entities.Repository,
	measure bool,
) ([]entities.ReportRow, error) {
	rows := make([]entities.ReportRow, 0, len(repos))

	if !measure {
		for _, repo := range repos {
			rows = append(rows, entities.ReportRow{
				Repository: repo,
				Status:     entities.StatusSkipped,
			})
		}
		return rows, nil
	}

	bar := newInspectProgressBar(len(repos))
	if bar != nil {
		defer func() { _ = bar.Finish() }()
	}

	for _, repo := range repos {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("inspection interrupted: %w", ctx.Err())
		}

		measurement, err := it.inspector.Measure(ctx, repo, provider.CloneURL(repo))
		if bar != nil {
			_ = bar.Add(1)
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("inspection interrupted: %w", ctx.Err())
			}

			var cloneErr *entities.CloneError
			if !errors.As(err, &cloneErr) {
				return nil, err
			}
			logger.Warnf("Failed to measure %s: %v", repo.FullName, err)
			if cloneErr.Output != "" {
				logger.Debugf("git output for %s:\n%s", repo.FullName, cloneErr.Output)
			}
			rows = append(rows, entities.ReportRow{
				Repository: repo,
				Status:     entities.StatusUnavailable,
			})
			continue
		}

		rows = append(rows, entities.ReportRow{
			Repository:  repo,
			Measurement: measurement,
			Status:      entities.StatusOK,
		})
	}

	return rows, nil
}

// splitRepoArg resolves a --repo argument into owner and name. A bare
// name takes its owner from the run's owner argument when there is
// exactly one; otherwise the owner stays empty and the provider
// resolves it to the authenticated user. GitLab subgroup paths keep
// everything before the last slash as the owner.
func splitRepoArg(arg string, owners []entities.Owner) (string, string) {
	if i := strings.LastIndex(arg, "/"); i >= 0 {
		return arg[:i], arg[i+1:]
	}
	if len(owners) == 1 {
		return owners[0].Name, arg
	}
	return "", arg
}

// filterByVisibility narrows the listing to public or private
// repositories; "all" and "" keep everything.
func filterByVisibility(repos []entities.Repository, visibility string) []entities.Repository {
	if visibility == "" || visibility == "all" {
		return repos
	}
	filtered := make([]entities.Repository, 0, len(repos))
	for _, repo := range repos {
		if repo.Visibility == visibility {
			filtered = append(filtered, repo)
		}
	}
	return filtered
}

// renderReport writes the report to stdout or, when an output path is
// set, to a file. Rendering happens before the file is touched, so a
// failed run never leaves output behind.
func renderReport(
	registry *infraRepos.RendererRegistry,
	report *entities.Report,
	format, output string,
	stdout io.Writer,
) error {
	renderer, err := registry.Get(format)
	if err != nil {
		return err
	}

	if output == "" {
		if stdout == nil {
			stdout = os.Stdout
		}
		return renderer.Render(stdout, report)
	}

	var buf bytes.Buffer
	if renderErr := renderer.Render(&buf, report); renderErr != nil {
		return renderErr
	}
	return writeReportFile(output, buf.Bytes())
}

// writeReportFile writes through a temp file and rename, so readers of
// the output path never observe a partial report.
func writeReportFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return &entities.OutputError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, writeErr := tmp.Write(data); writeErr != nil {
		_ = tmp.Close()
		return &entities.OutputError{Path: path, Err: writeErr}
	}
	_ = tmp.Chmod(outputFileMode)
	if closeErr := tmp.Close(); closeErr != nil {
		return &entities.OutputError{Path: path, Err: closeErr}
	}
	if renameErr := os.Rename(tmp.Name(), path); renameErr != nil {
		return &entities.OutputError{Path: path, Err: renameErr}
	}

	logger.Infof("Report written to %s", path)
	return nil
}

// resolveTokenFromEnv falls back to the conventional environment
// variables of each provider.
func resolveTokenFromEnv(providerType string) string {
	switch providerType {
	case providerGitHub:
		if t := os.Getenv("GITHUB_TOKEN"); t != "" {
			return t
		}
		return os.Getenv("GH_TOKEN")
	case providerGitLab:
		if t := os.Getenv("GITLAB_TOKEN"); t != "" {
			return t
		}
		return os.Getenv("GL_TOKEN")
	default:
		return ""
	}
}

package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	logger "github.com/sirupsen/logrus"

	"github.com/sparkyb/github-report/internal/domain/entities"
	"github.com/sparkyb/github-report/internal/domain/repositories"
	infraRepos "github.com/sparkyb/github-report/internal/infrastructure/repositories"
)

// Local is the interface for the local command (offline mode).
type Local interface {
	Execute(ctx context.Context, opts LocalOptions) error
}

// LocalOptions holds runtime options for the local mode.
type LocalOptions struct {
	Path   string
	Render entities.RenderOptions
	Output string
	Stdout io.Writer
}

// remoteInfo holds the coordinates inferred from a Git remote URL.
type remoteInfo struct {
	ProviderType string
	Owner        string
	Name         string
}

// LocalCommand reports on an existing working copy without touching
// any API: repository identity comes from the origin remote, sizes
// from the working tree itself.
type LocalCommand struct {
	rendererRegistry *infraRepos.RendererRegistry
	inspector        repositories.InspectorRepository
}

// NewLocalCommand creates a new LocalCommand.
func NewLocalCommand(
	rendererRegistry *infraRepos.RendererRegistry,
	inspector repositories.InspectorRepository,
) *LocalCommand {
	return &LocalCommand{
		rendererRegistry: rendererRegistry,
		inspector:        inspector,
	}
}

// Execute measures the working copy at opts.Path and renders a
// one-row report.
func (it *LocalCommand) Execute(ctx context.Context, opts LocalOptions) error {
	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	//nolint:exhaustruct // only the upward search matters here
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("failed to open repository at %s: %w", path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to resolve working tree: %w", err)
	}
	root := worktree.Filesystem.Root()

	descriptor := describeWorkingCopy(repo, root)
	logger.Infof("Measuring %s...", root)

	measurement, err := it.inspector.MeasurePath(ctx, root)
	if err != nil {
		return err
	}

	rows := []entities.ReportRow{{
		Repository:  descriptor,
		Measurement: measurement,
		Status:      entities.StatusOK,
	}}

	report := entities.BuildReport(rows, opts.Render)
	return renderReport(it.rendererRegistry, report, opts.Render.Format, opts.Output, opts.Stdout)
}

// describeWorkingCopy assembles a descriptor from what the repository
// itself can tell us. Everything is best effort: a working copy with
// no remote still gets reported under its directory name.
func describeWorkingCopy(repo *git.Repository, root string) entities.Repository {
	descriptor := entities.Repository{
		Name: filepath.Base(root),
	}

	if head, err := repo.Head(); err == nil {
		descriptor.DefaultBranch = head.Name().Short()
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil || len(remote.Config().URLs) == 0 {
		logger.Debug("No origin remote, reporting under the directory name")
		return descriptor
	}

	rawURL := remote.Config().URLs[0]
	info, parseErr := parseRemoteURL(rawURL)
	if parseErr != nil {
		logger.Debugf("Could not infer owner from remote %q: %v", rawURL, parseErr)
		return descriptor
	}

	descriptor.Name = info.Name
	descriptor.Owner = info.Owner
	descriptor.FullName = info.Owner + "/" + info.Name
	descriptor.CloneURL = rawURL
	descriptor.ProviderName = info.ProviderType
	return descriptor
}

// parseRemoteURL extracts owner and repository name from a Git remote
// URL, https and ssh forms alike.
func parseRemoteURL(rawURL string) (*remoteInfo, error) {
	endpoint, err := transport.NewEndpoint(rawURL)
	if err != nil {
		return nil, fmt.Errorf("unparseable remote URL: %w", err)
	}

	path := strings.Trim(endpoint.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	segments := strings.Split(path, "/")
	if len(segments) < 2 || segments[0] == "" {
		return nil, fmt.Errorf("cannot extract owner/name from remote URL: %s", rawURL)
	}

	info := &remoteInfo{
		// Nested GitLab groups keep their full path as the owner.
		Owner: strings.Join(segments[:len(segments)-1], "/"),
		Name:  segments[len(segments)-1],
	}

	switch {
	case strings.Contains(endpoint.Host, "github"):
		info.ProviderType = providerGitHub
	case strings.Contains(endpoint.Host, "gitlab"):
		info.ProviderType = providerGitLab
	}

	return info, nil
}

package gitclone

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/sparkyb/github-report/internal/domain/entities"
	"github.com/sparkyb/github-report/internal/domain/repositories"
)

const (
	tempPattern  = "github-report-*"
	dirFileMode  = 0o700
	maxOutputLen = 2048 // git output kept on a CloneError, for the debug log
)

// GitCloneInspectorRepository measures repositories by shallow-cloning
// them with the git binary. LFS content is never downloaded: the clone
// runs with GIT_LFS_SKIP_SMUDGE=1 and sizes come from LFS metadata.
type GitCloneInspectorRepository struct{}

// NewGitCloneInspectorRepository creates a new clone-based inspector.
func NewGitCloneInspectorRepository() repositories.InspectorRepository {
	return &GitCloneInspectorRepository{}
}

// Measure clones the repository into a fresh temp directory, measures
// it, and removes the directory on every exit path. Failures come back
// as *entities.CloneError so the caller can downgrade them to an
// unavailable row instead of aborting the run.
func (g *GitCloneInspectorRepository) Measure(
	ctx context.Context,
	repo entities.Repository,
	cloneURL string,
) (*entities.SizeMeasurement, error) {
	tmpDir, err := os.MkdirTemp("", tempPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer removeTempDir(tmpDir)

	repoDir := filepath.Join(tmpDir, "repo")

	logger.Infof("Cloning %s...", repo.FullName)

	args := []string{"clone", "--depth=1", "--single-branch", "--quiet"}
	if repo.DefaultBranch != "" {
		args = append(args, "--branch", repo.DefaultBranch)
	}
	args = append(args, cloneURL, repoDir)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = tmpDir
	cmd.Env = append(os.Environ(),
		"GIT_LFS_SKIP_SMUDGE=1",
		"GIT_TERMINAL_PROMPT=0",
	)

	output, cloneErr := cmd.CombinedOutput()
	if cloneErr != nil {
		return nil, &entities.CloneError{
			Repo:   repo.FullName,
			Output: redactCredentials(tail(string(output)), cloneURL),
			Err:    cloneErr,
		}
	}

	measurement, measureErr := g.MeasurePath(ctx, repoDir)
	if measureErr != nil {
		return nil, &entities.CloneError{Repo: repo.FullName, Err: measureErr}
	}
	return measurement, nil
}

// MeasurePath measures an existing working copy in place.
func (g *GitCloneInspectorRepository) MeasurePath(
	ctx context.Context,
	dir string,
) (*entities.SizeMeasurement, error) {
	treeBytes, err := workingTreeSize(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to measure working tree: %w", err)
	}

	lfsBytes, lfsObjects, err := measureLFS(ctx, dir)
	if err != nil {
		return nil, err
	}

	return &entities.SizeMeasurement{
		WorkingTreeBytes: treeBytes,
		LFSBytes:         lfsBytes,
		LFSObjects:       lfsObjects,
	}, nil
}

// workingTreeSize sums file sizes under root, skipping the .git store.
func workingTreeSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// removeTempDir force-removes the checkout. Object store files are
// read-only on some platforms, so a failed removal retries after
// making everything writable.
func removeTempDir(dir string) {
	if err := os.RemoveAll(dir); err == nil {
		return
	}

	_ = filepath.WalkDir(dir, func(path string, _ fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // best effort, keep walking
		}
		_ = os.Chmod(path, dirFileMode)
		return nil
	})

	if err := os.RemoveAll(dir); err != nil {
		logger.Debugf("Error cleaning up temp dir %s: %v", dir, err)
	}
}

// redactCredentials strips the userinfo part of the clone URL from git
// output before it is stored or logged.
func redactCredentials(output, cloneURL string) string {
	parsed, err := url.Parse(cloneURL)
	if err != nil || parsed.User == nil {
		return output
	}
	return strings.ReplaceAll(output, parsed.User.String()+"@", "***@")
}

// tail keeps the end of the git output, which is where the fatal
// message lives.
func tail(output string) string {
	output = strings.TrimSpace(output)
	if len(output) <= maxOutputLen {
		return output
	}
	return output[len(output)-maxOutputLen:]
}

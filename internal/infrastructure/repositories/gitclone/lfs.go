package gitclone

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"
)

const (
	// pointerPrefix is the first line of every LFS pointer file.
	pointerPrefix = "version https://git-lfs.github.com/spec/v1"
	// maxPointerSize bounds how much of a file is worth reading when
	// scanning for pointers; the LFS spec caps pointers well below this.
	maxPointerSize = 1024
)

// lfsSizePattern matches the "size: N" lines of git lfs ls-files --debug.
var lfsSizePattern = regexp.MustCompile(`(?m)^\s*size:\s*(\d+)\s*$`)

// pointerSizePattern matches the size line inside a pointer file.
var pointerSizePattern = regexp.MustCompile(`(?m)^size (\d+)$`)

// measureLFS sums the sizes of all LFS objects referenced by the
// repository at dir. It prefers git-lfs itself and falls back to
// scanning the working tree for pointer files when the binary is not
// installed.
func measureLFS(ctx context.Context, dir string) (int64, int, error) {
	cmd := exec.CommandContext(ctx, "git", "lfs", "ls-files", "--all", "--deleted", "--debug")
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		if isLFSMissing(err, output) {
			logger.Debug("git-lfs not available, scanning for pointer files instead")
			return scanPointerFiles(dir)
		}
		return 0, 0, fmt.Errorf("git lfs ls-files failed: %w: %s", err, tail(string(output)))
	}

	total, count := sumLFSSizes(string(output))
	return total, count, nil
}

// isLFSMissing reports whether the failure means git-lfs is not
// installed, as opposed to a real error in the repository.
func isLFSMissing(err error, output []byte) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	return strings.Contains(string(output), "not a git command")
}

func sumLFSSizes(output string) (int64, int) {
	matches := lfsSizePattern.FindAllStringSubmatch(output, -1)

	var total int64
	count := 0
	for _, match := range matches {
		size, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			continue
		}
		total += size
		count++
	}
	return total, count
}

// scanPointerFiles walks the working tree looking for LFS pointer
// files. With GIT_LFS_SKIP_SMUDGE=1 (or without git-lfs installed) the
// checkout leaves pointers in place of the real content, so their size
// lines add up to the current LFS payload.
func scanPointerFiles(root string) (int64, int, error) {
	var total int64
	count := 0

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
		if infoErr != nil || info.Size() > maxPointerSize {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil //nolint:nilerr // unreadable file, not a pointer
		}

		if size, ok := parsePointer(data); ok {
			total += size
			count++
		}
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to scan for LFS pointers: %w", err)
	}

	return total, count, nil
}

// parsePointer extracts the object size from an LFS pointer file.
func parsePointer(data []byte) (int64, bool) {
	if !bytes.HasPrefix(data, []byte(pointerPrefix)) {
		return 0, false
	}

	match := pointerSizePattern.FindSubmatch(data)
	if match == nil {
		return 0, false
	}

	size, err := strconv.ParseInt(string(match[1]), 10, 64)
	if err != nil {
		return 0, false
	}
	return size, true
}

//go:build unit

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkyb/github-report/config"
)

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestResolveToken(t *testing.T) {
	t.Run("should return empty string for empty input", func(t *testing.T) {
		t.Parallel()

		// given
		raw := ""

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Empty(t, result)
	})

	t.Run("should return inline token unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "ghp_abc123xyz"

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Equal(t, "ghp_abc123xyz", result)
	})

	t.Run("should expand environment variable reference", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("TEST_TOKEN_RESOLVE", "my-secret-token")
		raw := "${TEST_TOKEN_RESOLVE}"

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Equal(t, "my-secret-token", result)
	})

	t.Run("should expand env var embedded in string", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("TEST_PARTIAL_TOKEN", "secret")
		raw := "prefix-${TEST_PARTIAL_TOKEN}-suffix"

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Equal(t, "prefix-secret-suffix", result)
	})

	t.Run("should return empty for unset env var", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "${DEFINITELY_NOT_SET_VAR_12345}"

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Empty(t, result)
	})

	t.Run("should read token from file when path exists", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		tokenFile := filepath.Join(tmpDir, "token.key")
		err := os.WriteFile(tokenFile, []byte("  file-based-token  \n"), 0o600)
		require.NoError(t, err)

		// when
		result := config.ResolveToken(tokenFile)

		// then
		assert.Equal(t, "file-based-token", result)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("should fail on unknown provider", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := &config.Config{Provider: "bitbucket"}

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider")
	})

	t.Run("should fail on unknown format", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := &config.Config{Format: "xml"}

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})

	t.Run("should fail on unknown visibility", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := &config.Config{Visibility: "secret"}

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown visibility")
	})

	t.Run("should pass with valid configuration", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := &config.Config{
			Provider:   "github",
			Format:     "csv",
			Visibility: "public",
		}

		// when
		err := config.Validate(cfg)

		// then
		require.NoError(t, err)
	})

	t.Run("should pass with zero values", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := &config.Config{}

		// when
		err := config.Validate(cfg)

		// then
		require.NoError(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("should fail when file does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "missing.yaml")

		// when
		cfg, err := config.Load(path)

		// then
		require.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "bad.yaml")
		err := os.WriteFile(path, []byte("provider: [unclosed"), 0o600)
		require.NoError(t, err)

		// when
		cfg, loadErr := config.Load(path)

		// then
		require.Error(t, loadErr)
		assert.Nil(t, cfg)
	})

	t.Run("should fail on unknown enum value", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "github-report.yaml")
		err := os.WriteFile(path, []byte("format: xml\n"), 0o600)
		require.NoError(t, err)

		// when
		cfg, loadErr := config.Load(path)

		// then
		require.Error(t, loadErr)
		assert.Nil(t, cfg)
	})

	t.Run("should overlay file values on defaults", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "github-report.yaml")
		content := "owner: acme\nformat: csv\nlfs: true\nfields: [name, size]\n"
		err := os.WriteFile(path, []byte(content), 0o600)
		require.NoError(t, err)

		// when
		cfg, loadErr := config.Load(path)

		// then
		require.NoError(t, loadErr)
		assert.Equal(t, "acme", cfg.Owner)
		assert.Equal(t, "csv", cfg.Format)
		assert.True(t, cfg.LFS)
		assert.Equal(t, []string{"name", "size"}, cfg.Fields)
		// untouched keys keep their defaults
		assert.Equal(t, "github", cfg.Provider)
		assert.Equal(t, "full_name", cfg.Sort)
	})

	t.Run("should resolve token from file referenced in config", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		tokenFile := filepath.Join(tmpDir, "token.key")
		err := os.WriteFile(tokenFile, []byte("from-file\n"), 0o600)
		require.NoError(t, err)

		path := filepath.Join(tmpDir, "github-report.yaml")
		err = os.WriteFile(path, []byte("token: "+tokenFile+"\n"), 0o600)
		require.NoError(t, err)

		// when
		cfg, loadErr := config.Load(path)

		// then
		require.NoError(t, loadErr)
		assert.Equal(t, "from-file", cfg.Token)
	})
}

func TestDefault(t *testing.T) {
	t.Parallel()

	t.Run("should carry the documented defaults", func(t *testing.T) {
		t.Parallel()

		// when
		cfg := config.Default()

		// then
		assert.Equal(t, "github", cfg.Provider)
		assert.Equal(t, ".token", cfg.TokenFile)
		assert.Equal(t, "list", cfg.Format)
		assert.Equal(t, "full_name", cfg.Sort)
		assert.Equal(t, "all", cfg.Visibility)
		assert.False(t, cfg.LFS)
	})
}

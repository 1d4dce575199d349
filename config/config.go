package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for github-report. Every value
// is a default; command-line flags override all of them.
type Config struct {
	Provider   string   `yaml:"provider"`   // "github" or "gitlab"
	Owner      string   `yaml:"owner"`      // default owner to report on
	Token      string   `yaml:"token"`      // Inline, ${ENV_VAR}, or file path
	TokenFile  string   `yaml:"token_file"` // read token from this file when token is empty
	Format     string   `yaml:"format"`
	Fields     []string `yaml:"fields"`
	Sort       string   `yaml:"sort"`
	Visibility string   `yaml:"visibility"`
	LFS        bool     `yaml:"lfs"`
	Humanize   bool     `yaml:"humanize"`
	Totals     bool     `yaml:"totals"`
	Output     string   `yaml:"output"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Provider:   "github",
		TokenFile:  ".token",
		Format:     "list",
		Sort:       "full_name",
		Visibility: "all",
	}
}

// Load reads and parses a configuration file on top of the defaults,
// expanding environment variables and resolving token file paths.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.Token = resolveToken(cfg.Token)

	if validateErr := Validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// LoadOrDefault loads the given config file, or the first one found in
// the standard locations, or plain defaults when none exists. A .env
// file in the working directory is applied before env expansion.
func LoadOrDefault(path string) (*Config, error) {
	_ = godotenv.Load()

	if path != "" {
		return Load(path)
	}

	found, err := FindConfigFile()
	if err != nil {
		return Default(), nil //nolint:nilerr // no config file means defaults, not failure
	}

	logger.Debugf("Using config file: %s", found)
	return Load(found)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".github-report.yaml",
		".github-report.yml",
		"github-report.yaml",
		"github-report.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// Validate checks the enum-valued settings. It runs on every loaded
// file and again after command-line flags are merged in.
func Validate(cfg *Config) error {
	switch cfg.Provider {
	case "", "github", "gitlab":
	default:
		return fmt.Errorf("unknown provider %q (expected github or gitlab)", cfg.Provider)
	}

	switch cfg.Format {
	case "", "list", "table", "json", "csv":
	default:
		return fmt.Errorf("unknown format %q (expected list, table, json, or csv)", cfg.Format)
	}

	switch cfg.Visibility {
	case "", "all", "public", "private":
	default:
		return fmt.Errorf("unknown visibility %q (expected all, public, or private)", cfg.Visibility)
	}

	return nil
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mlsaran/smarttimetable/internal/constants"
)

// Config captures the client settings for talking to the timetable service.
type Config struct {
	// ServerURL is the base URL of the backend API, including the version
	// prefix (e.g. http://localhost:8000/api/v1).
	ServerURL string `yaml:"server_url"`
	// DownloadDir is where exported PDF/CSV artifacts are saved.
	DownloadDir string `yaml:"download_dir"`
	// DefaultVariants is the variant count preselected in the generator view.
	DefaultVariants int `yaml:"default_variants"`

	// Dir is the resolved config directory; not serialized.
	Dir string `yaml:"-"`
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, "config.yaml")
}

// Dir resolves the config directory, honoring SMARTTIMETABLE_CONFIG.
func Dir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("SMARTTIMETABLE_CONFIG")); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", constants.AppName), nil
}

// Load reads the config file from dir, applies defaults for absent fields
// and environment overrides, and validates the result. A missing file is
// not an error: defaults apply.
func Load(dir string) (Config, error) {
	cfg := Config{
		ServerURL:       constants.DefaultServerURL,
		DownloadDir:     ".",
		DefaultVariants: 3,
		Dir:             dir,
	}

	data, err := os.ReadFile(Path(dir))
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", Path(dir), err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	cfg.Dir = dir

	if server := strings.TrimSpace(os.Getenv("SMARTTIMETABLE_SERVER")); server != "" {
		cfg.ServerURL = server
	}
	if variants := strings.TrimSpace(os.Getenv("SMARTTIMETABLE_VARIANTS")); variants != "" {
		n, err := strconv.Atoi(variants)
		if err == nil && n > 0 {
			cfg.DefaultVariants = n
		}
	}

	invalid := make([]string, 0, 2)
	if u, err := url.Parse(cfg.ServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		invalid = append(invalid, "server_url")
	}
	if cfg.DefaultVariants < 1 {
		invalid = append(invalid, "default_variants")
	}
	if len(invalid) > 0 {
		return cfg, fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", "))
	}

	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	return cfg, nil
}

// Save writes the config file back to its directory.
func (c Config) Save() error {
	if err := os.MkdirAll(c.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(Path(c.Dir), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Package config resolves itinera's runtime configuration from defaults, the
// optional <data dir>/config.yaml file and ITINERA_* environment variables,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/itinera/internal/tripapi"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the config file looked up inside the data directory.
	FileName = "config.yaml"

	defaultDirName    = ".itinera"
	defaultDBName     = "itinera.db"
	defaultLogLevel   = "info"
	defaultServerAddr = ":8001"
)

// Config holds the resolved runtime configuration.
type Config struct {
	DataDir    string
	DBPath     string
	LogLevel   string
	ServerAddr string
	API        tripapi.Config
}

// fileConfig models config.yaml. Pointer fields distinguish "unset" from a
// zero value so the file only overrides what it names.
type fileConfig struct {
	DataDir  string        `yaml:"data_dir"`
	DBPath   string        `yaml:"db_path"`
	LogLevel string        `yaml:"log_level"`
	Server   fileServer    `yaml:"server"`
	API      fileAPIConfig `yaml:"api"`
}

type fileServer struct {
	Addr string `yaml:"addr"`
}

type fileAPIConfig struct {
	Enabled           *bool  `yaml:"enabled"`
	LogCalls          *bool  `yaml:"log_calls"`
	Endpoint          string `yaml:"endpoint"`
	TimeoutMs         *int   `yaml:"timeout_ms"`
	RegisterTimeoutMs *int   `yaml:"register_timeout_ms"`
	ProgressTimeoutMs *int   `yaml:"progress_timeout_ms"`
	ContentTimeoutMs  *int   `yaml:"content_timeout_ms"`
}

// Load resolves the configuration. The data directory is ITINERA_HOME, or
// ~/.itinera when unset.
func Load() (*Config, error) {
	dir := os.Getenv("ITINERA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		dir = filepath.Join(home, defaultDirName)
	}
	return LoadFrom(dir)
}

// LoadFrom resolves the configuration rooted at dataDir. A missing config
// file is not an error.
func LoadFrom(dataDir string) (*Config, error) {
	fc, err := readFile(filepath.Join(dataDir, FileName))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:    coalesce(fc.DataDir, dataDir),
		LogLevel:   coalesce(fc.LogLevel, defaultLogLevel),
		ServerAddr: coalesce(fc.Server.Addr, defaultServerAddr),
		API:        tripapi.DefaultConfig(),
	}
	cfg.DBPath = coalesce(fc.DBPath, filepath.Join(cfg.DataDir, defaultDBName))

	cfg.API.Enabled = firstSet(cfg.API.Enabled, fc.API.Enabled)
	cfg.API.LogCalls = firstSet(cfg.API.LogCalls, fc.API.LogCalls)
	cfg.API.Endpoint = coalesce(fc.API.Endpoint, cfg.API.Endpoint)
	cfg.API.TimeoutMs = firstSet(cfg.API.TimeoutMs, fc.API.TimeoutMs)
	cfg.API.RegisterTimeoutMs = firstSet(cfg.API.RegisterTimeoutMs, fc.API.RegisterTimeoutMs)
	cfg.API.ProgressTimeoutMs = firstSet(cfg.API.ProgressTimeoutMs, fc.API.ProgressTimeoutMs)
	cfg.API.ContentTimeoutMs = firstSet(cfg.API.ContentTimeoutMs, fc.API.ContentTimeoutMs)

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ITINERA_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("ITINERA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ITINERA_SERVER_ADDR"); v != "" {
		c.ServerAddr = v
	}
	c.API.ApplyEnv()
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var problems []string
	if c.DBPath == "" {
		problems = append(problems, "db_path is empty")
	}
	if c.API.Enabled && !strings.HasPrefix(c.API.Endpoint, "http://") && !strings.HasPrefix(c.API.Endpoint, "https://") {
		problems = append(problems, fmt.Sprintf("api.endpoint %q must be an http(s) URL", c.API.Endpoint))
	}
	if c.API.TimeoutMs <= 0 {
		problems = append(problems, "api.timeout_ms must be positive: "+strconv.Itoa(c.API.TimeoutMs))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fc, nil
		}
		return fc, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fc, nil
}

// coalesce returns the first non-empty string.
func coalesce(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstSet returns the first non-nil pointer's value, or fallback.
func firstSet[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

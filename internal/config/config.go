// Package config loads dmr settings from an optional YAML file, a .env file,
// and DMR_* environment variables, in increasing order of precedence.
package config

import (
	"io/ioutil"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/birkland/modelsrepo"
	"github.com/birkland/modelsrepo/resolv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file settings
const (
	EnvRepository = "DMR_REPOSITORY"
	EnvResolution = "DMR_RESOLUTION"
	EnvCacheSize  = "DMR_CACHE_SIZE"
	EnvTimeout    = "DMR_TIMEOUT"
)

// Config holds resolver settings.  Empty values mean library defaults.
type Config struct {
	Repository string        `yaml:"repository"`
	Resolution string        `yaml:"resolution"`
	CacheSize  int           `yaml:"cacheSize"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Load reads the YAML file at path, if path is not empty, then applies
// environment overrides.  A .env file in the working directory, if present,
// is loaded into the environment first; it never replaces variables that are
// already set.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if _, err := cfg.Mode(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DotEnvFile is the environment file Load reads from the working directory
var DotEnvFile = ".env"

// loadDotEnv loads an environment file, which may be absent
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || os.IsNotExist(errors.Cause(err)) {
		return nil
	}
	return errors.Wrapf(err, "could not load %s", path)
}

func (c *Config) readFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "open config file %s", path)
	}
	if info.IsDir() {
		return errors.Errorf("%s is a directory, expected a file", path)
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config file %s", path)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Repository = firstNonEmpty(strings.TrimSpace(os.Getenv(EnvRepository)), c.Repository)
	c.Resolution = firstNonEmpty(strings.TrimSpace(os.Getenv(EnvResolution)), c.Resolution)

	if raw := strings.TrimSpace(os.Getenv(EnvCacheSize)); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 0 {
			return errors.Errorf("%s must be a non-negative integer, got %q", EnvCacheSize, raw)
		}
		c.CacheSize = size
	}

	if raw := strings.TrimSpace(os.Getenv(EnvTimeout)); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvTimeout)
		}
		c.Timeout = timeout
	}

	return nil
}

// Mode parses the configured resolution mode.  Empty means modelsrepo.Enabled.
func (c *Config) Mode() (modelsrepo.DependencyResolution, error) {
	if strings.TrimSpace(c.Resolution) == "" {
		return modelsrepo.Enabled, nil
	}
	return modelsrepo.ParseDependencyResolution(c.Resolution)
}

// ClientOptions converts the configuration into resolver client options
func (c *Config) ClientOptions() (resolv.Options, error) {
	mode, err := c.Mode()
	if err != nil {
		return resolv.Options{}, err
	}

	return resolv.Options{
		Resolution: mode,
		CacheSize:  c.CacheSize,
		Timeout:    c.Timeout,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

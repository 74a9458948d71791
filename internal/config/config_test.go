package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/birkland/modelsrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dmr.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	for _, v := range []string{EnvRepository, EnvResolution, EnvCacheSize, EnvTimeout} {
		t.Setenv(v, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, modelsrepo.Enabled, mode)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
repository: https://models.example.org
resolution: tryFromExpanded
cacheSize: 64
timeout: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Repository: "https://models.example.org",
		Resolution: "tryFromExpanded",
		CacheSize:  64,
		Timeout:    5 * time.Second,
	}, cfg)

	opts, err := cfg.ClientOptions()
	require.NoError(t, err)
	assert.Equal(t, modelsrepo.TryFromExpanded, opts.Resolution)
	assert.Equal(t, 64, opts.CacheSize)
	assert.Equal(t, 5*time.Second, opts.Timeout)
}

func TestLoadEmptyFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, "\n  \n"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRepository, "/srv/models")
	t.Setenv(EnvResolution, "disabled")
	t.Setenv(EnvCacheSize, "8")
	t.Setenv(EnvTimeout, "250ms")

	cfg, err := Load(writeConfig(t, "repository: https://models.example.org\ncacheSize: 64\n"))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Repository: "/srv/models",
		Resolution: "disabled",
		CacheSize:  8,
		Timeout:    250 * time.Millisecond,
	}, cfg)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "badCacheSize", env: map[string]string{EnvCacheSize: "lots"}},
		{name: "negativeCacheSize", env: map[string]string{EnvCacheSize: "-1"}},
		{name: "badTimeout", env: map[string]string{EnvTimeout: "soon"}},
		{name: "badResolution", env: map[string]string{EnvResolution: "sometimes"}},
		{name: "badYaml", file: "repository: [unclosed"},
		{name: "badResolutionInFile", file: "resolution: always"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range c.env {
				t.Setenv(k, v)
			}

			path := ""
			if c.file != "" {
				path = writeConfig(t, c.file)
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	_, err = Load(t.TempDir())
	assert.Error(t, err)
}

func TestDotEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, ioutil.WriteFile(envFile, []byte("DMR_CACHE_SIZE=16\n"), 0644))

	defer func(orig string) { DotEnvFile = orig }(DotEnvFile)
	DotEnvFile = envFile

	// Variables already set, even to empty, are not replaced by the file
	os.Unsetenv(EnvCacheSize)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.CacheSize)
}

func TestDotEnvMissing(t *testing.T) {
	clearEnv(t)

	defer func(orig string) { DotEnvFile = orig }(DotEnvFile)
	DotEnvFile = filepath.Join(t.TempDir(), ".env")

	_, err := Load("")
	assert.NoError(t, err)
}

func TestDotEnvMalformed(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, ioutil.WriteFile(envFile, []byte("DMR_REPOSITORY='unterminated\n"), 0644))

	defer func(orig string) { DotEnvFile = orig }(DotEnvFile)
	DotEnvFile = envFile

	_, err := Load("")
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, DefaultBaseURL, cfg.Raw.API.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Raw.API.Timeout)
	assert.Equal(t, "/", cfg.Raw.API.RedirectPath)
	assert.Equal(t, DefaultSuccessCodes, cfg.Raw.API.SuccessCodes)
	assert.Equal(t, "file", cfg.Raw.Store.Backend)
	assert.Equal(t, filepath.Join(dir, "state"), cfg.Raw.Store.Dir)
	assert.Equal(t, "consolectl:", cfg.Raw.Store.RedisPrefix)
	assert.Equal(t, "127.0.0.1:8080", cfg.Raw.Shell.ListenAddr, "shell listens on loopback by default")
	assert.Equal(t, DefaultBaseURL, cfg.Raw.Shell.BundleBaseURL)
	assert.Equal(t, "Console", cfg.Raw.Shell.Title)
	assert.Equal(t, DefaultLoginRate, cfg.Raw.Shell.LoginRate)
	assert.Equal(t, DefaultLoginBurst, cfg.Raw.Shell.LoginBurst)
	assert.Equal(t, "info", cfg.Raw.LogLevel)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	content := `api:
  base_url: https://console.example.com/apis
  timeout: 5s
  success_codes: ["io.tkeel.SUCCESS", 0]
store:
  backend: redis
  redis_addr: 127.0.0.1:6379
shell:
  title: Admin
log_level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://console.example.com/apis", cfg.Raw.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Raw.API.Timeout)
	assert.Equal(t, []any{"io.tkeel.SUCCESS", 0}, cfg.Raw.API.SuccessCodes)
	assert.Equal(t, "redis", cfg.Raw.Store.Backend)
	assert.Equal(t, "127.0.0.1:6379", cfg.Raw.Store.RedisAddr)
	assert.Equal(t, "Admin", cfg.Raw.Shell.Title)
	assert.Equal(t, "https://console.example.com/apis", cfg.Raw.Shell.BundleBaseURL)
	assert.Equal(t, "debug", cfg.Raw.LogLevel)
}

func TestLoad_JSONFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"api":{"base_url":"http://10.0.0.1/apis"}}`), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1/apis", cfg.Raw.API.BaseURL)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("api: [unclosed"), 0600))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api:\n  base_url: http://from-file/apis\n"), 0600))

	t.Setenv("CONSOLE_API_BASE_URL", "http://from-env/apis")
	t.Setenv("CONSOLE_STORE_BACKEND", "memory")
	t.Setenv("CONSOLE_SHELL_LOGIN_BURST", "2")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env/apis", cfg.Raw.API.BaseURL)
	assert.Equal(t, "memory", cfg.Raw.Store.Backend)
	assert.Equal(t, 2, cfg.Raw.Shell.LoginBurst)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()

	_, err := FindConfigFile(&Config{ConfigDir: dir})
	assert.ErrorIs(t, err, ErrNoConfigFile)

	_, err = FindConfigFile(&Config{ConfigDir: filepath.Join(dir, "nope")})
	assert.ErrorIs(t, err, ErrNoConfigFile)

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0600))
	found, err := FindConfigFile(&Config{ConfigDir: dir})
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "consolectl")
	cfg, err := Load(dir)
	require.NoError(t, err)

	cfg.Raw.API.BaseURL = "http://saved/apis"
	require.NoError(t, cfg.Save())

	reloaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://saved/apis", reloaded.Raw.API.BaseURL)
	assert.Equal(t, cfg.Raw.Store.Dir, reloaded.Raw.Store.Dir)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CONSOLE_TEST_VALUE", "set")
	assert.Equal(t, "set", getEnv("CONSOLE_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", getEnv("CONSOLE_TEST_UNSET_VALUE", "fallback"))
}

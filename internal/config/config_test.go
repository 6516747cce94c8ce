package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Store.Dir)
	assert.Equal(t, ".env", cfg.Store.File)
	assert.Equal(t, DefaultValidationMinLength, cfg.Validation.MinLength)
	assert.True(t, cfg.Validation.CheckPrefix)
	assert.Equal(t, DefaultLaunchScript(), cfg.Launch.Script)
	assert.Equal(t, 2*time.Second, cfg.LockTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.LaunchDelay())
	assert.Equal(t, filepath.Join(".", ".env"), cfg.EnvPath())
}

func TestLoad_GlobalFileEnvAndFlags(t *testing.T) {
	isolate(t)
	global := DefaultConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(global), 0o700))
	require.NoError(t, os.WriteFile(global, []byte(`
store:
  dir: /srv/app
  file: keys.env
validation:
  min_length: 20
launch:
  delay: 1s
`), 0o600))

	t.Setenv("KEYENV_VALIDATION__CHECK_PREFIX", "false")
	t.Setenv("KEYENV_STORE__LOCK_TIMEOUT", "5s")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("store.file", DefaultStoreFile, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--store.file", "override.env"}))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/srv/app"), cfg.Store.Dir)
	assert.Equal(t, "override.env", cfg.Store.File)
	assert.Equal(t, 20, cfg.Validation.MinLength)
	assert.False(t, cfg.Validation.CheckPrefix)
	assert.Equal(t, 5*time.Second, cfg.LockTimeout())
	assert.Equal(t, time.Second, cfg.LaunchDelay())
}

func TestLoad_ExplicitConfigMustExist(t *testing.T) {
	isolate(t)
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--config", "/does/not/exist.yaml"}))

	_, err := Load(cmd)
	assert.Error(t, err)
}

func TestLoad_BadDuration(t *testing.T) {
	isolate(t)
	t.Setenv("KEYENV_LAUNCH__DELAY", "soon")

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "launch.delay")
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := isolate(t)
	t.Setenv("KEYENV_STORE__DIR", "~/project")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "project"), cfg.Store.Dir)
	assert.Equal(t, filepath.Join(home, "project", cfg.Launch.Script), cfg.ScriptPath())
}

func TestEnvPath_Absolute(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Dir: "/a", File: "/b/keys.env"}}
	assert.Equal(t, "/b/keys.env", cfg.EnvPath())
}

func TestDurationOrDefault(t *testing.T) {
	d, err := DurationOrDefault("", "3s")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, d)

	_, err = DurationOrDefault("", "")
	assert.Error(t, err)
}

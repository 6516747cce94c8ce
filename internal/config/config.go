package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"keyenv/internal/pathutil"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

const EnvPrefix = "KEYENV_"

const (
	DefaultStoreDir            = "."
	DefaultStoreFile           = ".env"
	DefaultStoreBackup         = false
	DefaultStoreLockTimeout    = "2s"
	DefaultValidationMinLength = 10
	DefaultValidationPrefix    = true
	DefaultLaunchDelay         = "500ms"
	DefaultLogLevel            = "info"
	DefaultLaunchScriptUnix    = "start.sh"
	DefaultLaunchScriptWindows = "start.bat"
)

type Config struct {
	Store      StoreConfig      `koanf:"store" yaml:"store"`
	Validation ValidationConfig `koanf:"validation" yaml:"validation"`
	Launch     LaunchConfig     `koanf:"launch" yaml:"launch"`
	Log        LogConfig        `koanf:"log" yaml:"log"`
}

type StoreConfig struct {
	Dir         string `koanf:"dir" yaml:"dir"`
	File        string `koanf:"file" yaml:"file"`
	Backup      bool   `koanf:"backup" yaml:"backup"`
	LockTimeout string `koanf:"lock_timeout" yaml:"lock_timeout"`
}

type ValidationConfig struct {
	MinLength   int  `koanf:"min_length" yaml:"min_length"`
	CheckPrefix bool `koanf:"check_prefix" yaml:"check_prefix"`
}

type LaunchConfig struct {
	Script  string `koanf:"script" yaml:"script"`
	Command string `koanf:"command" yaml:"command"`
	Delay   string `koanf:"delay" yaml:"delay"`
}

type LogConfig struct {
	Level string `koanf:"level" yaml:"level"`
	File  string `koanf:"file" yaml:"file"`
}

// EnvPath is the config file the keys are saved to.
func (c *Config) EnvPath() string {
	if filepath.IsAbs(c.Store.File) {
		return c.Store.File
	}
	return filepath.Join(c.Store.Dir, c.Store.File)
}

// ScriptPath is the startup script, resolved next to the env file.
func (c *Config) ScriptPath() string {
	if filepath.IsAbs(c.Launch.Script) {
		return c.Launch.Script
	}
	return filepath.Join(c.Store.Dir, c.Launch.Script)
}

func (c *Config) LockTimeout() time.Duration {
	d, err := DurationOrDefault(c.Store.LockTimeout, DefaultStoreLockTimeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultStoreLockTimeout)
	}
	return d
}

func (c *Config) LaunchDelay() time.Duration {
	d, err := DurationOrDefault(c.Launch.Delay, DefaultLaunchDelay)
	if err != nil {
		d, _ = time.ParseDuration(DefaultLaunchDelay)
	}
	return d
}

func DefaultLaunchScript() string {
	if runtime.GOOS == "windows" {
		return DefaultLaunchScriptWindows
	}
	return DefaultLaunchScriptUnix
}

// DefaultConfigPath is $XDG_CONFIG_HOME/keyenv/config.yaml or ~/.config/keyenv/config.yaml.
func DefaultConfigPath() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "keyenv", "config.yaml")
	}
	h, _ := os.UserHomeDir()
	if h == "" {
		h = "."
	}
	return filepath.Join(h, ".config", "keyenv", "config.yaml")
}

// Load layers defaults, the YAML config file, KEYENV_* variables and command flags.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"store.dir":               DefaultStoreDir,
		"store.file":              DefaultStoreFile,
		"store.backup":            DefaultStoreBackup,
		"store.lock_timeout":      DefaultStoreLockTimeout,
		"validation.min_length":   DefaultValidationMinLength,
		"validation.check_prefix": DefaultValidationPrefix,
		"launch.script":           DefaultLaunchScript(),
		"launch.command":          "",
		"launch.delay":            DefaultLaunchDelay,
		"log.level":               DefaultLogLevel,
		"log.file":                "",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
	} else {
		globalPath := DefaultConfigPath()
		if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
			slog.Debug("global config not found or invalid", "path", globalPath, "error", err)
		}
	}

	// KEYENV_STORE__LOCK_TIMEOUT -> store.lock_timeout
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if cmd != nil {
		if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) error {
	var err error
	if cfg.Store.Dir, err = expandOr(cfg.Store.Dir, DefaultStoreDir); err != nil {
		return fmt.Errorf("store.dir: %w", err)
	}
	if cfg.Store.File, err = expandOr(cfg.Store.File, DefaultStoreFile); err != nil {
		return fmt.Errorf("store.file: %w", err)
	}
	if cfg.Launch.Script, err = expandOr(cfg.Launch.Script, DefaultLaunchScript()); err != nil {
		return fmt.Errorf("launch.script: %w", err)
	}
	if cfg.Log.File, err = pathutil.Expand(cfg.Log.File); err != nil {
		return fmt.Errorf("log.file: %w", err)
	}

	if cfg.Validation.MinLength <= 0 {
		cfg.Validation.MinLength = DefaultValidationMinLength
	}
	if _, err := DurationOrDefault(cfg.Store.LockTimeout, DefaultStoreLockTimeout); err != nil {
		return fmt.Errorf("store.lock_timeout: %w", err)
	}
	if _, err := DurationOrDefault(cfg.Launch.Delay, DefaultLaunchDelay); err != nil {
		return fmt.Errorf("launch.delay: %w", err)
	}
	return nil
}

func expandOr(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = fallback
	}
	return pathutil.Expand(path)
}

// Package app ties the pure reconciliation engine to the config file and the launcher.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"keyenv/internal/config"
	core "keyenv/internal/core"
	"keyenv/internal/fsx"
	"keyenv/internal/launcher"
	"keyenv/internal/providers"
	"keyenv/internal/store"
)

// Service performs load, save and launch for one env file.
type Service struct {
	Path        string
	Descriptors []core.Descriptor
	Validator   core.Validator
	Backup      bool
	LockTimeout time.Duration
	Launcher    launcher.Launcher
}

// New builds a Service from resolved settings.
func New(cfg *config.Config) *Service {
	return &Service{
		Path:        cfg.EnvPath(),
		Descriptors: providers.All(),
		Validator: core.Validator{
			MinLength:   cfg.Validation.MinLength,
			CheckPrefix: cfg.Validation.CheckPrefix,
		},
		Backup:      cfg.Store.Backup,
		LockTimeout: cfg.LockTimeout(),
		Launcher: launcher.Launcher{
			Script:  cfg.ScriptPath(),
			Command: cfg.Launch.Command,
		},
	}
}

// Load reads the env file. When the file exists but cannot be read, it returns an
// empty mapping together with an error wrapping core.ErrRead; callers show it as a
// warning and carry on.
func (s *Service) Load() (*core.Mapping, error) {
	m, err := store.Load(s.Path)
	if err != nil {
		slog.Warn("config unreadable, continuing with empty values", "path", s.Path, "error", err)
		return core.NewMapping(), fmt.Errorf("%w: %w", core.ErrRead, err)
	}
	slog.Debug("config loaded", "path", s.Path, "keys", m.Len())
	return m, nil
}

// Form returns a form pre-filled from the file plus the load warning, if any.
func (s *Service) Form() (core.FormState, error) {
	m, err := s.Load()
	return core.FormFromMapping(m, s.Descriptors), err
}

// Save validates the form, reconciles it with the file and writes the result.
// An empty result that erases existing keys is only written when confirmed;
// otherwise the result is returned with core.ErrConfirmationRequired.
// A file that exists but cannot be read is never replaced.
func (s *Service) Save(form core.FormState, confirmed bool) (core.Result, error) {
	if err := s.Validator.ValidateForm(form, s.Descriptors); err != nil {
		return core.Result{}, err
	}

	lock, err := fsx.LockFile(s.Path, s.lockTimeout())
	if err != nil {
		if errors.Is(err, fsx.ErrLockTimeout) {
			return core.Result{}, fmt.Errorf("%w: %w", core.ErrLocked, err)
		}
		return core.Result{}, fmt.Errorf("%w: %w", core.ErrWrite, err)
	}
	defer lock.Unlock()

	disk, err := s.Load()
	if err != nil {
		return core.Result{}, fmt.Errorf("%w: not overwriting %s: %w", core.ErrWrite, s.Path, err)
	}
	res := core.Reconcile(disk, form, s.Descriptors)
	if res.NeedsConfirmation() && !confirmed {
		return res, core.ErrConfirmationRequired
	}

	if err := store.Save(s.Path, res.Mapping, store.SaveOptions{Backup: s.Backup}); err != nil {
		slog.Error("config save failed", "path", s.Path, "error", err)
		return res, fmt.Errorf("%w: %w", core.ErrWrite, err)
	}
	slog.Info("config saved", "path", s.Path, "keys", res.Mapping.Len(), "changes", len(res.Changes))
	return res, nil
}

// Launch starts the startup script with the saved keys in its environment.
func (s *Service) Launch(saved *core.Mapping) error {
	l := s.Launcher
	l.Env = saved.Map()
	if err := l.Start(); err != nil {
		slog.Error("launch failed", "script", l.Script, "error", err)
		return fmt.Errorf("%w: %w", core.ErrLaunch, err)
	}
	return nil
}

// ScriptExists reports whether the configured startup script is present.
func (s *Service) ScriptExists() bool {
	if s.Launcher.Command != "" {
		return true
	}
	_, err := os.Stat(s.Launcher.Script)
	return err == nil
}

func (s *Service) lockTimeout() time.Duration {
	if s.LockTimeout <= 0 {
		return 2 * time.Second
	}
	return s.LockTimeout
}

// Preview validates and reconciles without writing.
func (s *Service) Preview(form core.FormState) (core.Result, error) {
	if err := s.Validator.ValidateForm(form, s.Descriptors); err != nil {
		return core.Result{}, err
	}
	disk, err := s.Load()
	if err != nil {
		return core.Result{}, err
	}
	return core.Reconcile(disk, form, s.Descriptors), nil
}

package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/google/shlex"
)

var ErrScriptNotFound = errors.New("startup script not found")

// Launcher starts the companion script as a detached process and forgets about it.
type Launcher struct {
	// Script is the startup script path.
	Script string
	// Command optionally replaces the default invocation, e.g. "bash ./start.sh --fast".
	Command string
	// Env is added on top of the current environment.
	Env map[string]string
}

// Start launches the process. It does not wait for it.
func (l Launcher) Start() error {
	cmd, err := l.command()
	if err != nil {
		return err
	}
	cmd.Env = append(os.Environ(), envList(l.Env)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = nil, nil, nil
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	slog.Info("startup script launched", "path", cmd.Path, "pid", cmd.Process.Pid)
	if err := cmd.Process.Release(); err != nil {
		slog.Debug("release process handle", "error", err)
	}
	return nil
}

func (l Launcher) command() (*exec.Cmd, error) {
	if l.Command != "" {
		parts, err := shlex.Split(l.Command)
		if err != nil {
			return nil, fmt.Errorf("parse launch command %q: %w", l.Command, err)
		}
		if len(parts) == 0 {
			return nil, fmt.Errorf("launch command is empty")
		}
		bin, err := exec.LookPath(parts[0])
		if err != nil {
			return nil, fmt.Errorf("launch command %q: %w", parts[0], err)
		}
		cmd := exec.Command(bin, parts[1:]...)
		cmd.Dir = l.dir()
		return cmd, nil
	}

	script, err := filepath.Abs(l.Script)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(script)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", filepath.Base(script), ErrScriptNotFound)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", filepath.Base(script), ErrScriptNotFound)
	}
	cmd, err := scriptCommand(script, info)
	if err != nil {
		return nil, err
	}
	cmd.Dir = filepath.Dir(script)
	return cmd, nil
}

func (l Launcher) dir() string {
	if l.Script == "" {
		return ""
	}
	if abs, err := filepath.Abs(l.Script); err == nil {
		return filepath.Dir(abs)
	}
	return ""
}

func envList(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

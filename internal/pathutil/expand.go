package pathutil

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Expand resolves environment variables and "~/" home shortcuts.
func Expand(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}

	expanded := os.ExpandEnv(trimmed)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := homeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if expanded == "~" {
			expanded = home
		} else {
			expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~/"))
		}
	}

	return filepath.Clean(expanded), nil
}

func homeDir() (string, error) {
	if home, err := os.UserHomeDir(); err == nil && usable(home) {
		return strings.TrimSpace(home), nil
	}
	if current, err := user.Current(); err == nil && usable(current.HomeDir) {
		return strings.TrimSpace(current.HomeDir), nil
	}
	return "", fmt.Errorf("HOME is not set")
}

func usable(home string) bool {
	h := strings.TrimSpace(home)
	return h != "" && h != "~" && !strings.HasPrefix(h, "~/")
}

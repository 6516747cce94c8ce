package fsx

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

// AtomicWrite writes content to a temp file in the same directory and renames it into place.
func AtomicWrite(path string, content []byte, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return err
	}
	return os.Chmod(path, mode)
}

// BackupFile creates a timestamped .bak copy if the file exists.
func BackupFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	stamp := time.Now().Format("20060102-150405")
	bak := filepath.Join(dir, fmt.Sprintf("%s.%s.bak", base, stamp))
	if err := os.WriteFile(bak, b, 0o600); err != nil {
		return "", err
	}
	return bak, nil
}

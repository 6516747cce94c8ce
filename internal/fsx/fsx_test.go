package fsx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWrite_ReplacesContent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "file.env")
	require.NoError(t, AtomicWrite(p, []byte("one"), 0o600))
	require.NoError(t, AtomicWrite(p, []byte("two"), 0o600))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))

	entries, err := os.ReadDir(filepath.Dir(p))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestBackupFile_Missing(t *testing.T) {
	_, err := BackupFile(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLockFile_ExcludesSecondHolder(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")

	first, err := LockFile(p, time.Second)
	require.NoError(t, err)

	_, err = LockFile(p, 100*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLockTimeout)

	first.Unlock()
	second, err := LockFile(p, time.Second)
	require.NoError(t, err)
	second.Unlock()
	second.Unlock()
}

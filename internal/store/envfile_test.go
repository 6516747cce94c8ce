package store

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	core "keyenv/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SplitsOnFirstEquals(t *testing.T) {
	m, err := Parse(strings.NewReader("A=1\n#comment\n \nB=2=3\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "2=3"}, m.Map())
	assert.Equal(t, []string{"A", "B"}, m.Keys())
}

func TestParse_SkipsMalformedAndTrims(t *testing.T) {
	in := "\ufeffFIRST = one \n  # indented comment\nno equals here\n=novalue\nLAST=\r\nFIRST=two"
	m, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"FIRST", "LAST"}, m.Keys())
	v, _ := m.Get("FIRST")
	assert.Equal(t, "two", v)
	v, ok := m.Get("LAST")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestParse_LongLinesAndMultibyte(t *testing.T) {
	long := strings.Repeat("x", 200000)
	m, err := Parse(strings.NewReader("BIG=" + long + "\nNAME=密钥\n"))
	require.NoError(t, err)
	v, _ := m.Get("BIG")
	assert.Len(t, v, len(long))
	v, _ = m.Get("NAME")
	assert.Equal(t, "密钥", v)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestLoad_UnreadableFile(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("A=1\n"), 0o000))

	m, err := Load(p)
	require.Error(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestSaveLoad_RoundTripPreservesOrder(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	in := core.NewMapping()
	in.Set("B", "2")
	in.Set("A", "1")

	require.NoError(t, Save(p, in, SaveOptions{}))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "B=2\nA=1\n", string(b))

	out, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, in.Keys(), out.Keys())
	assert.Equal(t, in.Map(), out.Map())

	if runtime.GOOS != "windows" {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestSave_TruncatesAndDropsComments(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("# header\nOLD=1\nKEEP=2\n"), 0o600))

	m, err := Load(p)
	require.NoError(t, err)
	m.Delete("OLD")
	require.NoError(t, Save(p, m, SaveOptions{}))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "KEEP=2\n", string(b))
}

func TestSave_Backup(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte("A=1\n"), 0o600))

	m := core.NewMapping()
	m.Set("A", "2")
	require.NoError(t, Save(p, m, SaveOptions{Backup: true}))

	baks, err := filepath.Glob(filepath.Join(dir, ".env.*.bak"))
	require.NoError(t, err)
	require.Len(t, baks, 1)
	b, err := os.ReadFile(baks[0])
	require.NoError(t, err)
	assert.Equal(t, "A=1\n", string(b))
}

func TestSave_BackupOfMissingFileIsFine(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", ".env")
	require.NoError(t, Save(p, core.NewMapping(), SaveOptions{Backup: true}))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestSave_ErrorWhenTargetIsDirectory(t *testing.T) {
	p := t.TempDir()
	err := Save(p, core.NewMapping(), SaveOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), p)
}

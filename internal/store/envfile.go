package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	core "keyenv/internal/core"
	"keyenv/internal/fsx"
)

const fileMode fs.FileMode = 0o600

// SaveOptions tune how Save replaces the file.
type SaveOptions struct {
	Backup bool
}

// Load reads a KEY=VALUE file. A missing file is an empty mapping, not an error.
func Load(path string) (*core.Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.NewMapping(), nil
		}
		return core.NewMapping(), err
	}
	defer f.Close()
	m, err := Parse(f)
	if err != nil {
		return core.NewMapping(), fmt.Errorf("read %s: %w", path, err)
	}
	return m, nil
}

// Parse reads KEY=VALUE lines. Blank lines, # comments and lines without '='
// are skipped; the value is everything after the first '='.
func Parse(r io.Reader) (*core.Mapping, error) {
	m := core.NewMapping()
	br := bufio.NewReader(r)
	first := true
	for {
		ln, err := br.ReadString('\n')
		if ln != "" {
			if first {
				ln = strings.TrimPrefix(ln, "\ufeff")
			}
			first = false
			parseLine(m, ln)
		}
		if err == io.EOF {
			return m, nil
		}
		if err != nil {
			return m, err
		}
	}
}

func parseLine(m *core.Mapping, ln string) {
	line := strings.TrimSpace(ln)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return
	}
	k := strings.TrimSpace(line[:i])
	if k == "" {
		return
	}
	m.Set(k, strings.TrimSpace(line[i+1:]))
}

// Format renders one key=value line per entry in mapping order. Values are not escaped.
func Format(m *core.Mapping) []byte {
	var b strings.Builder
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		b.WriteString(k + "=" + v + "\n")
	}
	return []byte(b.String())
}

// Save replaces path with the serialized mapping.
func Save(path string, m *core.Mapping, opts SaveOptions) error {
	if opts.Backup {
		bak, err := fsx.BackupFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("backup %s: %w", path, err)
		}
		if bak != "" {
			slog.Info("config backed up", "path", bak)
		}
	}
	if err := fsx.AtomicWrite(path, Format(m), fileMode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

package migration

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4/source"
)

const gooseSourceName = "goose-embed"

// gooseSource is a golang-migrate source.Driver over goose-annotated
// scripts, so both strategies share one set of files.
type gooseSource struct {
	migrations *source.Migrations
	up         map[uint]string
	down       map[uint]string
}

func newGooseSource(fsys fs.FS) (*gooseSource, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	s := &gooseSource{
		migrations: source.NewMigrations(),
		up:         make(map[uint]string),
		down:       make(map[uint]string),
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		version, identifier, err := parseScriptName(e.Name())
		if err != nil {
			return nil, err
		}
		raw, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		up, down := splitGooseScript(string(raw))

		s.up[version] = up
		s.down[version] = down
		if !s.migrations.Append(&source.Migration{Version: version, Identifier: identifier, Direction: source.Up, Raw: e.Name()}) ||
			!s.migrations.Append(&source.Migration{Version: version, Identifier: identifier, Direction: source.Down, Raw: e.Name()}) {
			return nil, fmt.Errorf("duplicate migration version %d", version)
		}
	}
	return s, nil
}

// parseScriptName splits "00001_init_schema.sql" into 1 and "init_schema".
func parseScriptName(name string) (uint, string, error) {
	base := strings.TrimSuffix(name, ".sql")
	num, identifier, ok := strings.Cut(base, "_")
	if !ok {
		return 0, "", fmt.Errorf("migration file %q has no version prefix", name)
	}
	version, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("migration file %q: %w", name, err)
	}
	return uint(version), identifier, nil
}

// splitGooseScript returns the Up and Down sections, dropping the goose
// annotations themselves.
func splitGooseScript(raw string) (up, down string) {
	var upB, downB strings.Builder
	var current *strings.Builder

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "-- +goose Up"):
			current = &upB
			continue
		case strings.HasPrefix(trimmed, "-- +goose Down"):
			current = &downB
			continue
		case strings.HasPrefix(trimmed, "-- +goose"):
			continue
		}
		if current != nil {
			current.WriteString(line)
			current.WriteByte('\n')
		}
	}
	return strings.TrimSpace(upB.String()), strings.TrimSpace(downB.String())
}

func (s *gooseSource) Open(string) (source.Driver, error) {
	return s, nil
}

func (s *gooseSource) Close() error {
	return nil
}

func (s *gooseSource) First() (uint, error) {
	v, ok := s.migrations.First()
	if !ok {
		return 0, &os.PathError{Op: "first", Path: gooseSourceName, Err: os.ErrNotExist}
	}
	return v, nil
}

func (s *gooseSource) Prev(version uint) (uint, error) {
	v, ok := s.migrations.Prev(version)
	if !ok {
		return 0, &os.PathError{Op: fmt.Sprintf("prev for version %d", version), Path: gooseSourceName, Err: os.ErrNotExist}
	}
	return v, nil
}

func (s *gooseSource) Next(version uint) (uint, error) {
	v, ok := s.migrations.Next(version)
	if !ok {
		return 0, &os.PathError{Op: fmt.Sprintf("next for version %d", version), Path: gooseSourceName, Err: os.ErrNotExist}
	}
	return v, nil
}

func (s *gooseSource) ReadUp(version uint) (io.ReadCloser, string, error) {
	m, ok := s.migrations.Up(version)
	if !ok {
		return nil, "", &os.PathError{Op: fmt.Sprintf("read up version %d", version), Path: gooseSourceName, Err: os.ErrNotExist}
	}
	return io.NopCloser(strings.NewReader(s.up[version])), m.Identifier, nil
}

func (s *gooseSource) ReadDown(version uint) (io.ReadCloser, string, error) {
	m, ok := s.migrations.Down(version)
	if !ok || s.down[version] == "" {
		return nil, "", &os.PathError{Op: fmt.Sprintf("read down version %d", version), Path: gooseSourceName, Err: os.ErrNotExist}
	}
	return io.NopCloser(strings.NewReader(s.down[version])), m.Identifier, nil
}

package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const migrationUpTemplate = `-- Migration: {{.Name}}
-- Created: {{.Timestamp}}
{{- if .Description}}
-- {{.Description}}
{{- end}}

`

const migrationDownTemplate = `-- Rollback: {{.Name}}
-- Created: {{.Timestamp}}

`

// versionWidth is the zero padding of sequential migration versions
const versionWidth = 6

// MigrationFile represents a migration file pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down pair numbered one past the highest
// existing version in migrationsDir
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := ListMigrations(migrationsDir)
	if err != nil {
		return nil, err
	}
	next := 1
	if len(existing) > 0 {
		last, _ := parseVersion(existing[len(existing)-1])
		next = last + 1
	}

	version := fmt.Sprintf("%0*d", versionWidth, next)
	base := version + "_" + slug
	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		UpPath:      filepath.Join(migrationsDir, base+".up.sql"),
		DownPath:    filepath.Join(migrationsDir, base+".down.sql"),
	}

	if err := writeTemplate(mf.UpPath, migrationUpTemplate, mf); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}
	if err := writeTemplate(mf.DownPath, migrationDownTemplate, mf); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}
	return mf, nil
}

func writeTemplate(path, tmplContent string, data *MigrationFile) error {
	tmpl, err := template.New("migration").Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

// sanitizeName lowercases name and collapses separators into single underscores
func sanitizeName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, c := range strings.ToLower(name) {
		switch {
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(c)
		case c == ' ' || c == '-' || c == '_':
			pendingSep = true
		}
	}
	return b.String()
}

// parseVersion returns the numeric prefix of a migration base name
func parseVersion(base string) (int, bool) {
	prefix, _, ok := strings.Cut(base, "_")
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ListMigrations returns the base names of the numbered migrations in
// migrationsDir, ordered by version
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	bases := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base, ok := strings.CutSuffix(entry.Name(), ".up.sql")
		if !ok {
			continue
		}
		if _, ok := parseVersion(base); ok {
			bases = append(bases, base)
		}
	}
	sort.Slice(bases, func(i, j int) bool {
		vi, _ := parseVersion(bases[i])
		vj, _ := parseVersion(bases[j])
		return vi < vj
	})
	return bases, nil
}

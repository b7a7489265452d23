// Package migrate loads embedded, ordered SQL migration files.
//
// Migration files are named NNN_description.sql and may carry goose-style
// "-- +migrate Up" / "-- +migrate Down" sections; only the Up section is kept.
// Drivers record applied keys in their own tables.
package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migration is one embedded migration file.
type Migration struct {
	// Key identifies the file in the migration table, including its root.
	Key string
	// Up holds the statements to apply.
	Up string
}

// Load reads the .sql files under root in lexical order.
func Load(migrationFS fs.FS, migrationRoot string) ([]Migration, error) {
	if migrationFS == nil {
		return nil, errors.New("migration fs is required")
	}
	root := strings.TrimSpace(migrationRoot)
	if root == "" {
		root = "."
	}
	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(migrationFS, path.Join(root, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		key := name
		if root != "." {
			key = path.Join(root, name)
		}
		migrations = append(migrations, Migration{Key: key, Up: ExtractUpMigration(string(content))})
	}
	return migrations, nil
}

// ExtractUpMigration returns the SQL in the -- +migrate Up section.
func ExtractUpMigration(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, downMarker)
	if downIdx == -1 || downIdx < upIdx {
		return content[upIdx+len(upMarker):]
	}
	return content[upIdx+len(upMarker) : downIdx]
}

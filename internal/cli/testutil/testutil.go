// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// ProjectConfig is the crudshell.yaml written by SetupTestProject.
const ProjectConfig = `site_name: Test Admin
username_field: email
models:
  - name: users
    category: auth
  - name: groups
    category: auth
  - name: orders
    category: sales
    title: Customer Orders
  - name: settings
rows:
  driver: sqlite
  dsn: data.db
`

// SetupTestProject creates a temporary project with a config file and a
// SQLite row source, and returns its directory.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crudshell.yaml"), []byte(ProjectConfig), 0600))

	db, err := sql.Open("sqlite", filepath.Join(dir, "data.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	stmts := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT, active BOOLEAN)`,
		`INSERT INTO users (id, email, active) VALUES (1, 'ada@example.com', 1), (2, 'grace@example.com', 0)`,
		`CREATE TABLE orders (id INTEGER PRIMARY KEY, total REAL, note TEXT)`,
		`INSERT INTO orders (id, total, note) VALUES (10, 12.5, NULL)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return dir
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

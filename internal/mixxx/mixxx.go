// Package mixxx locates the local Mixxx library database and clears its
// crate records.
package mixxx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
)

// DatabaseFileName is the name of the library database inside the Mixxx directory.
const DatabaseFileName = "mixxxdb.sqlite"

const osWindows = "windows"

// NotFoundError is returned when no database exists at the expected path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Database at '%s' doesn't exist!", e.Path)
}

// DefaultDir returns the Mixxx settings directory for the given OS and home directory.
func DefaultDir(goos, home string) string {
	if goos == osWindows {
		return filepath.Join(home, "AppData", "Local", "Mixxx")
	}
	return filepath.Join(home, ".mixxx")
}

// DatabasePath returns the absolute database path inside dir.
func DatabasePath(dir string) (string, error) {
	return filepath.Abs(filepath.Join(dir, DatabaseFileName))
}

// Locate resolves the database path. A non-empty override replaces the
// per-OS directory convention.
func Locate(override, goos string) (string, error) {
	dir := override
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dir = DefaultDir(goos, home)
	}
	return DatabasePath(dir)
}

// ClearCrates deletes every row of the crates table in the database at
// dbPath and returns the number of rows removed. The file is never created.
func ClearCrates(ctx context.Context, dbPath string) (n int64, err error) {
	info, err := os.Stat(dbPath)
	if errors.Is(err, os.ErrNotExist) {
		return 0, &NotFoundError{Path: dbPath}
	}
	if err != nil {
		return 0, fmt.Errorf("stat database: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("database path %q is a directory", dbPath)
	}

	db, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
	}()

	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("failed to connect to database: %w", err)
	}

	res, err := db.ExecContext(ctx, "DELETE FROM crates;")
	if err != nil {
		return 0, fmt.Errorf("failed to clear crates: %w", err)
	}
	n, err = res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared crates: %w", err)
	}
	return n, nil
}

// dsn builds an SQLite URI for path. mode=rw keeps the driver from creating
// a fresh file if the database vanished since the stat.
func dsn(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths need a leading slash in file URIs.
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=rw&_busy_timeout=5000"}
	return u.String()
}

package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Firefox profile globs, checked in order. The snap layout comes first;
// it is the installation type this tool was originally written against.
var firefoxCookieGlobs = []string{
	"/home/*/snap/firefox/common/.mozilla/firefox/*.default/cookies.sqlite",
	"$HOME/.mozilla/firefox/*.default*/cookies.sqlite",
}

// firefoxSource reads the session cookie out of a local Firefox profile's
// cookie database.
type firefoxSource struct {
	globs  []string
	domain string
}

func newFirefoxSource(domain string) *firefoxSource {
	return &firefoxSource{globs: firefoxCookieGlobs, domain: domain}
}

func (s *firefoxSource) name() string { return "firefox" }

func (s *firefoxSource) lookup() (string, error) {
	dbPath, err := findCookieDB(s.globs)
	if err != nil {
		return "", err
	}
	return readSessionCookie(dbPath, s.domain)
}

// findCookieDB returns the first cookie database matching any glob.
func findCookieDB(globs []string) (string, error) {
	for _, pattern := range globs {
		matches, err := filepath.Glob(os.ExpandEnv(pattern))
		if err != nil {
			return "", fmt.Errorf("bad cookie glob: %w", err)
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", errors.New("no firefox cookie database found")
}

// readSessionCookie looks up the session cookie for the given domain.
// The database is copied aside first: Firefox keeps the live file locked
// while running.
func readSessionCookie(dbPath, domain string) (string, error) {
	tmpPath, err := copyToTemp(dbPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	db, err := sql.Open("sqlite", "file:"+tmpPath+"?mode=ro")
	if err != nil {
		return "", fmt.Errorf("open cookie database: %w", err)
	}
	defer func() { _ = db.Close() }()

	var value string
	row := db.QueryRow(
		`SELECT value FROM moz_cookies WHERE host LIKE '%' || ? AND name = 'session' ORDER BY lastAccessed DESC LIMIT 1`,
		domain,
	)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("no session cookie for %s: log in with firefox first", domain)
		}
		return "", fmt.Errorf("query cookie database: %w", err)
	}
	if value == "" {
		return "", fmt.Errorf("empty session cookie for %s", domain)
	}
	return value, nil
}

func copyToTemp(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.CreateTemp("", "aochelper-cookies-*.sqlite")
	if err != nil {
		return "", fmt.Errorf("create temp copy: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("copy cookie database: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("close temp copy: %w", err)
	}
	return dst.Name(), nil
}

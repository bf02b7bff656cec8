package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	pkgLog "sales-scheduler/pkg/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS calendar_credentials (
	user_id       TEXT NOT NULL,
	provider      TEXT NOT NULL,
	access_token  TEXT NOT NULL,
	refresh_token TEXT NOT NULL DEFAULT '',
	expires_at    TEXT NOT NULL,
	scope         TEXT NOT NULL DEFAULT '',
	updated_at    TEXT NOT NULL,
	PRIMARY KEY (user_id, provider)
);
`

type implRepository struct {
	db *sql.DB
	l  pkgLog.Logger
}

// New opens (or creates) the credential database at path and bootstraps the schema.
// WAL mode keeps concurrent refresh writes from blocking reads.
func New(l pkgLog.Logger, path string) (*implRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening credential database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrapping credential schema: %w", err)
	}

	return &implRepository{db: db, l: l}, nil
}

// Close closes the database connection.
func (r *implRepository) Close() error {
	return r.db.Close()
}

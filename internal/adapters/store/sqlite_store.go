package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS job_contacts (
		reference TEXT PRIMARY KEY,
		source_url TEXT NOT NULL DEFAULT '',
		employer TEXT NOT NULL DEFAULT '',
		normalized_employer TEXT NOT NULL DEFAULT '',
		emails TEXT NOT NULL DEFAULT '[]',
		email_count INTEGER NOT NULL DEFAULT 0,
		best_email TEXT NOT NULL DEFAULT '',
		has_emails BOOLEAN NOT NULL DEFAULT 0,
		company_domain TEXT NOT NULL DEFAULT '',
		base_domain TEXT NOT NULL DEFAULT '',
		application_website TEXT NOT NULL DEFAULT '',
		method TEXT NOT NULL DEFAULT '',
		mx_checked BOOLEAN NOT NULL DEFAULT 0,
		has_mx BOOLEAN NOT NULL DEFAULT 0,
		extracted_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	)
`

// NewSQLiteStore opens (and creates if needed) a SQLite database at dbPath
func NewSQLiteStore(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	err = createSchema(db,
		sqliteSchema,
		`CREATE INDEX IF NOT EXISTS idx_job_contacts_expires_at ON job_contacts(expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_job_contacts_employer ON job_contacts(normalized_employer)`,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create SQLite schema: %w", err)
	}

	return newSQLStore(db, "sqlite", "INSERT OR REPLACE", logger, cleanupFreq), nil
}

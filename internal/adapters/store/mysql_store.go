package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

const mysqlSchema = `
	CREATE TABLE IF NOT EXISTS job_contacts (
		reference VARCHAR(128) PRIMARY KEY,
		source_url TEXT NOT NULL,
		employer VARCHAR(512) NOT NULL DEFAULT '',
		normalized_employer VARCHAR(512) NOT NULL DEFAULT '',
		emails TEXT NOT NULL,
		email_count INT NOT NULL DEFAULT 0,
		best_email VARCHAR(320) NOT NULL DEFAULT '',
		has_emails BOOLEAN NOT NULL DEFAULT FALSE,
		company_domain VARCHAR(255) NOT NULL DEFAULT '',
		base_domain VARCHAR(255) NOT NULL DEFAULT '',
		application_website TEXT NOT NULL,
		method VARCHAR(16) NOT NULL DEFAULT '',
		mx_checked BOOLEAN NOT NULL DEFAULT FALSE,
		has_mx BOOLEAN NOT NULL DEFAULT FALSE,
		extracted_at BIGINT NOT NULL,
		expires_at BIGINT NOT NULL,
		INDEX idx_expires_at (expires_at),
		INDEX idx_normalized_employer (normalized_employer)
	) DEFAULT CHARSET=utf8mb4
`

// NewMySQLStore connects to MySQL and creates the job_contacts table if needed
func NewMySQLStore(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	if err := createSchema(db, mysqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create MySQL schema: %w", err)
	}

	return newSQLStore(db, "mysql", "REPLACE", logger, cleanupFreq), nil
}

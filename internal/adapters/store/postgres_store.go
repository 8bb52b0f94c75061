package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mikey/job-contact-extractor/internal/core"
	"go.uber.org/zap"
)

// Querier abstracts the pgx query methods used by PostgresStore.
// *pgxpool.Pool and pgx.Tx both satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS job_contacts (
		reference TEXT PRIMARY KEY,
		source_url TEXT NOT NULL DEFAULT '',
		employer TEXT NOT NULL DEFAULT '',
		normalized_employer TEXT NOT NULL DEFAULT '',
		emails TEXT[] NOT NULL DEFAULT '{}',
		email_count INTEGER NOT NULL DEFAULT 0,
		best_email TEXT NOT NULL DEFAULT '',
		has_emails BOOLEAN NOT NULL DEFAULT FALSE,
		company_domain TEXT NOT NULL DEFAULT '',
		base_domain TEXT NOT NULL DEFAULT '',
		application_website TEXT NOT NULL DEFAULT '',
		method TEXT NOT NULL DEFAULT '',
		mx_checked BOOLEAN NOT NULL DEFAULT FALSE,
		has_mx BOOLEAN NOT NULL DEFAULT FALSE,
		extracted_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)
`

const postgresUpsert = `INSERT INTO job_contacts (` + recordColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (reference) DO UPDATE SET
		source_url = EXCLUDED.source_url,
		employer = EXCLUDED.employer,
		normalized_employer = EXCLUDED.normalized_employer,
		emails = EXCLUDED.emails,
		email_count = EXCLUDED.email_count,
		best_email = EXCLUDED.best_email,
		has_emails = EXCLUDED.has_emails,
		company_domain = EXCLUDED.company_domain,
		base_domain = EXCLUDED.base_domain,
		application_website = EXCLUDED.application_website,
		method = EXCLUDED.method,
		mx_checked = EXCLUDED.mx_checked,
		has_mx = EXCLUDED.has_mx,
		extracted_at = EXCLUDED.extracted_at,
		expires_at = EXCLUDED.expires_at`

// PostgresStore is a PostgreSQL implementation of the ResultRepository interface
type PostgresStore struct {
	db          Querier
	closeDB     func()
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewPostgresStore connects a pgx pool to url and creates the schema
func NewPostgresStore(ctx context.Context, url string, logger *zap.Logger, cleanupFreq time.Duration) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	s := newPostgresStore(pool, pool.Close, logger, cleanupFreq)
	if err := s.EnsureSchema(ctx); err != nil {
		s.Stop()
		return nil, err
	}

	return s, nil
}

func newPostgresStore(db Querier, closeDB func(), logger *zap.Logger, cleanupFreq time.Duration) *PostgresStore {
	s := &PostgresStore{
		db:          db,
		closeDB:     closeDB,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
		now:         time.Now,
	}

	go runCleanup(cleanupFreq, s.stopCh, s.Cleanup, logger)

	return s
}

// EnsureSchema creates the job_contacts table and its indexes
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		postgresSchema,
		`CREATE INDEX IF NOT EXISTS idx_job_contacts_expires_at ON job_contacts (expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_job_contacts_employer ON job_contacts (normalized_employer)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create PostgreSQL schema: %w", err)
		}
	}
	return nil
}

// Get retrieves the unexpired record for a job reference
func (s *PostgresStore) Get(ctx context.Context, reference string) (*core.ContactRecord, error) {
	var record core.ContactRecord

	err := s.db.QueryRow(ctx, `SELECT `+recordColumns+`
		FROM job_contacts
		WHERE reference = $1 AND expires_at > $2`, reference, s.now()).Scan(
		&record.Reference, &record.SourceURL, &record.Employer, &record.NormalizedEmployer,
		&record.Emails, &record.EmailCount, &record.BestEmail, &record.HasEmails,
		&record.Domain, &record.BaseDomain, &record.ApplicationWebsite, &record.Method,
		&record.MXChecked, &record.HasMX, &record.ExtractedAt, &record.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to query postgres store: %w", err)
	}

	if record.Emails == nil {
		record.Emails = []string{}
	}
	record.ExtractedAt = record.ExtractedAt.UTC()
	record.ExpiresAt = record.ExpiresAt.UTC()

	return &record, nil
}

// Upsert stores a record, replacing any record with the same reference
func (s *PostgresStore) Upsert(ctx context.Context, record *core.ContactRecord) error {
	emails := record.Emails
	if emails == nil {
		emails = []string{}
	}

	_, err := s.db.Exec(ctx, postgresUpsert,
		record.Reference, record.SourceURL, record.Employer, record.NormalizedEmployer,
		emails, record.EmailCount, record.BestEmail, record.HasEmails,
		record.Domain, record.BaseDomain, record.ApplicationWebsite, record.Method,
		record.MXChecked, record.HasMX, record.ExtractedAt, record.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert contact record: %w", err)
	}

	return nil
}

// Delete removes the record for a job reference
func (s *PostgresStore) Delete(ctx context.Context, reference string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM job_contacts WHERE reference = $1`, reference); err != nil {
		return fmt.Errorf("failed to delete contact record: %w", err)
	}
	return nil
}

// Cleanup removes expired records
func (s *PostgresStore) Cleanup(ctx context.Context) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM job_contacts WHERE expires_at <= $1`, s.now())
	if err != nil {
		return fmt.Errorf("failed to clean up expired records: %w", err)
	}

	s.logger.Debug("Cleaned up expired contact records",
		zap.String("store", "postgres"),
		zap.Int64("expired_count", tag.RowsAffected()))

	return nil
}

// Stop stops the background cleanup task and closes the pool
func (s *PostgresStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		if s.closeDB != nil {
			s.closeDB()
		}
	})
}

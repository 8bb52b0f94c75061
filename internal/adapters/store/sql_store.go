package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mikey/job-contact-extractor/internal/core"
	"go.uber.org/zap"
)

// SQLStore persists contact records through database/sql. The SQLite and
// MySQL stores share it and differ only in driver, schema and upsert verb.
// Timestamps are stored as unix milliseconds so both dialects compare them
// the same way.
type SQLStore struct {
	db          *sql.DB
	name        string
	upsertSQL   string
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

func newSQLStore(db *sql.DB, name, upsertVerb string, logger *zap.Logger, cleanupFreq time.Duration) *SQLStore {
	s := &SQLStore{
		db:   db,
		name: name,
		upsertSQL: fmt.Sprintf(`%s INTO %s (%s)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, upsertVerb, tableName, recordColumns),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
		now:         time.Now,
	}

	go runCleanup(cleanupFreq, s.stopCh, s.Cleanup, logger)

	return s
}

// Get retrieves the unexpired record for a job reference
func (s *SQLStore) Get(ctx context.Context, reference string) (*core.ContactRecord, error) {
	var (
		record                 core.ContactRecord
		emails                 string
		extractedAt, expiresAt int64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM `+tableName+`
		WHERE reference = ? AND expires_at > ?
	`, reference, s.now().UnixMilli()).Scan(
		&record.Reference, &record.SourceURL, &record.Employer, &record.NormalizedEmployer,
		&emails, &record.EmailCount, &record.BestEmail, &record.HasEmails,
		&record.Domain, &record.BaseDomain, &record.ApplicationWebsite, &record.Method,
		&record.MXChecked, &record.HasMX, &extractedAt, &expiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to query %s store: %w", s.name, err)
	}

	if record.Emails, err = decodeEmails(emails); err != nil {
		return nil, err
	}
	record.ExtractedAt = time.UnixMilli(extractedAt).UTC()
	record.ExpiresAt = time.UnixMilli(expiresAt).UTC()

	return &record, nil
}

// Upsert stores a record, replacing any record with the same reference
func (s *SQLStore) Upsert(ctx context.Context, record *core.ContactRecord) error {
	emails, err := encodeEmails(record.Emails)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.upsertSQL,
		record.Reference, record.SourceURL, record.Employer, record.NormalizedEmployer,
		emails, record.EmailCount, record.BestEmail, record.HasEmails,
		record.Domain, record.BaseDomain, record.ApplicationWebsite, record.Method,
		record.MXChecked, record.HasMX, record.ExtractedAt.UnixMilli(), record.ExpiresAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert contact record: %w", err)
	}

	return nil
}

// Delete removes the record for a job reference
func (s *SQLStore) Delete(ctx context.Context, reference string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM `+tableName+` WHERE reference = ?`, reference)
	if err != nil {
		return fmt.Errorf("failed to delete contact record: %w", err)
	}

	return nil
}

// Cleanup removes expired records
func (s *SQLStore) Cleanup(ctx context.Context) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM `+tableName+` WHERE expires_at <= ?`, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to clean up expired records: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else {
		s.logger.Debug("Cleaned up expired contact records",
			zap.String("store", s.name),
			zap.Int64("expired_count", rowsAffected))
	}

	return nil
}

// Stop stops the background cleanup task and closes the database connection
func (s *SQLStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database", zap.String("store", s.name), zap.Error(err))
		}
	})
}

func createSchema(db *sql.DB, statements ...string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikey/job-contact-extractor/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "contacts.db"), zap.NewNop(), 0)
	require.NoError(t, err)
	t.Cleanup(s.Stop)
	s.now = func() time.Time { return storeNow }
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrRecordNotFound)

	record := testRecord("10000-1234567890-S", 24*time.Hour)
	require.NoError(t, s.Upsert(ctx, record))

	got, err := s.Get(ctx, record.Reference)
	require.NoError(t, err)
	assert.Equal(t, record, got)

	empty := testRecord("10000-0000000001-S", 24*time.Hour)
	empty.Emails = nil
	empty.EmailCount = 0
	empty.BestEmail = ""
	empty.HasEmails = false
	empty.Domain = ""
	empty.BaseDomain = ""
	empty.ApplicationWebsite = "https://karriere.firma.de/jobs"
	require.NoError(t, s.Upsert(ctx, empty))

	got, err = s.Get(ctx, empty.Reference)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Emails)
	assert.False(t, got.HasEmails)
	assert.Equal(t, "https://karriere.firma.de/jobs", got.ApplicationWebsite)
}

func TestSQLiteStore_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Upsert(ctx, testRecord("ref", time.Hour)))

	updated := testRecord("ref", 2*time.Hour)
	updated.Emails = []string{"jobs@mueller.de"}
	updated.EmailCount = 1
	updated.BestEmail = "jobs@mueller.de"
	updated.Method = core.MethodAssist
	require.NoError(t, s.Upsert(ctx, updated))

	got, err := s.Get(ctx, "ref")
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM job_contacts`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLiteStore_ExpiryAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Upsert(ctx, testRecord("fresh", time.Hour)))
	require.NoError(t, s.Upsert(ctx, testRecord("stale", -time.Hour)))

	_, err := s.Get(ctx, "stale")
	assert.ErrorIs(t, err, core.ErrRecordNotFound)

	require.NoError(t, s.Cleanup(ctx))

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM job_contacts`).Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, s.Delete(ctx, "fresh"))
	_, err = s.Get(ctx, "fresh")
	assert.ErrorIs(t, err, core.ErrRecordNotFound)
}

package intake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikey/job-contact-extractor/internal/adapters/store"
	"github.com/mikey/job-contact-extractor/internal/core"
	"github.com/mikey/job-contact-extractor/internal/extractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestService(t *testing.T, withStore bool) *core.ContactService {
	t.Helper()

	logger := zap.NewNop()
	if !withStore {
		return core.NewContactService(extractor.New(extractor.DefaultConfig()), nil, logger, false, time.Hour)
	}

	s := store.NewMemoryStore(logger, time.Hour)
	t.Cleanup(s.Stop)
	return core.NewContactService(extractor.New(extractor.DefaultConfig()), s, logger, true, time.Hour)
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHTTPIntake_Healthz(t *testing.T) {
	h := NewHTTPIntake(newTestService(t, false), zap.NewNop(), "127.0.0.1:0", time.Second).Handler()

	rec := doRequest(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHTTPIntake_Extract(t *testing.T) {
	h := NewHTTPIntake(newTestService(t, false), zap.NewNop(), "127.0.0.1:0", time.Second).Handler()

	rec := doRequest(h, http.MethodPost, "/v1/extract",
		`{"html": "<p>info@firma.de</p><p>bewerbung(at)firma.de</p>", "company_name": "Firma"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result extractor.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, []string{"bewerbung@firma.de", "info@firma.de"}, result.Emails)
	assert.Equal(t, 2, result.EmailCount)
	assert.Equal(t, "bewerbung@firma.de", result.BestEmail)
	assert.Equal(t, "firma.de", result.Domain)

	rec = doRequest(h, http.MethodPost, "/v1/extract", `{"html": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPIntake_Postings(t *testing.T) {
	h := NewHTTPIntake(newTestService(t, true), zap.NewNop(), "127.0.0.1:0", time.Second).Handler()

	rec := doRequest(h, http.MethodGet, "/v1/postings/10000-1234567890-S", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(h, http.MethodPost, "/v1/postings", `{
		"reference": "10000-1234567890-S",
		"source_url": "https://www.arbeitsagentur.de/jobsuche/jobdetail/10000-1234567890-S",
		"employer": "Firma GmbH",
		"html": "<p>Ihre Bewerbung an jobs@firma.de</p>"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var record core.ContactRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, "10000-1234567890-S", record.Reference)
	assert.Equal(t, "jobs@firma.de", record.BestEmail)
	assert.True(t, record.HasEmails)
	assert.Equal(t, "firma gmbh", record.NormalizedEmployer)

	rec = doRequest(h, http.MethodGet, "/v1/postings/10000-1234567890-S", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"best_email":"jobs@firma.de"`)

	rec = doRequest(h, http.MethodDelete, "/v1/postings/10000-1234567890-S", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(h, http.MethodGet, "/v1/postings/10000-1234567890-S", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPIntake_PostingValidation(t *testing.T) {
	h := NewHTTPIntake(newTestService(t, true), zap.NewNop(), "127.0.0.1:0", time.Second).Handler()

	rec := doRequest(h, http.MethodPost, "/v1/postings", `{"html": "jobs@firma.de"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h, http.MethodPost, "/v1/postings", `{"reference": "   ", "html": "jobs@firma.de"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPIntake_StoreDisabled(t *testing.T) {
	h := NewHTTPIntake(newTestService(t, false), zap.NewNop(), "127.0.0.1:0", time.Second).Handler()

	rec := doRequest(h, http.MethodGet, "/v1/postings/ref", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHTTPIntake_StartStop(t *testing.T) {
	i := NewHTTPIntake(newTestService(t, false), zap.NewNop(), "127.0.0.1:0", time.Second)
	require.NoError(t, i.Start())
	defer i.Stop()

	resp, err := http.Get("http://" + i.Addr() + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, i.Stop())
}

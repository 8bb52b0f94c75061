package intake

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/mikey/job-contact-extractor/internal/config"
	"github.com/mikey/job-contact-extractor/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startSMTPIntake(t *testing.T, service *core.ContactService) *SMTPIntake {
	t.Helper()

	i := NewSMTPIntake(service, zap.NewNop(), config.SMTPConfig{
		ListenAddress:   "127.0.0.1:0",
		Domain:          "localhost",
		MaxMessageBytes: 1 << 20,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
	}, 5*time.Second)
	require.NoError(t, i.Start())
	t.Cleanup(func() { _ = i.Stop() })
	return i
}

func TestSMTPIntake_ProcessesMessage(t *testing.T) {
	service := newTestService(t, true)
	i := startSMTPIntake(t, service)

	msg := crlf("From: fetcher@localhost\n" +
		"To: intake@localhost\n" +
		"Subject: Stellenanzeige\n" +
		"X-Job-Reference: 10000-1234567890-S\n" +
		"X-Employer: =?UTF-8?Q?M=C3=BCller_GmbH?=\n" +
		"X-Source-URL: https://www.arbeitsagentur.de/jobsuche/jobdetail/10000-1234567890-S\n" +
		"Content-Type: text/html; charset=utf-8\n\n" +
		"<p>Bewerbungen bitte an bewerbung [at] mueller.de</p>\n")

	err := smtp.SendMail(i.Addr(), nil, "fetcher@localhost", []string{"intake@localhost"}, strings.NewReader(msg))
	require.NoError(t, err)

	record, err := service.Lookup(context.Background(), "10000-1234567890-S")
	require.NoError(t, err)
	assert.Equal(t, "bewerbung@mueller.de", record.BestEmail)
	assert.Equal(t, "Müller GmbH", record.Employer)
	assert.Equal(t, "https://www.arbeitsagentur.de/jobsuche/jobdetail/10000-1234567890-S", record.SourceURL)
}

func TestSMTPIntake_MessageIDFallback(t *testing.T) {
	service := newTestService(t, true)
	i := startSMTPIntake(t, service)

	msg := crlf("From: fetcher@localhost\n" +
		"Message-ID: <page-42@fetcher>\n\n" +
		"Kontakt: jobs@firma.de\n")

	require.NoError(t, smtp.SendMail(i.Addr(), nil, "fetcher@localhost", []string{"intake@localhost"}, strings.NewReader(msg)))

	record, err := service.Lookup(context.Background(), "page-42@fetcher")
	require.NoError(t, err)
	assert.Equal(t, "jobs@firma.de", record.BestEmail)
}

func TestSMTPIntake_RejectsMissingReference(t *testing.T) {
	i := startSMTPIntake(t, newTestService(t, true))

	msg := crlf("From: fetcher@localhost\n\nKontakt: jobs@firma.de\n")
	err := smtp.SendMail(i.Addr(), nil, "fetcher@localhost", []string{"intake@localhost"}, strings.NewReader(msg))
	require.Error(t, err)

	var smtpErr *smtp.SMTPError
	require.ErrorAs(t, err, &smtpErr)
	assert.Equal(t, 554, smtpErr.Code)
}

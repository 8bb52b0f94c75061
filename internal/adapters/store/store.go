package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// tableName is the table shared by all SQL stores
const tableName = "job_contacts"

// recordColumns lists the job_contacts columns in scan order
const recordColumns = `reference, source_url, employer, normalized_employer, emails, email_count,
	best_email, has_emails, company_domain, base_domain, application_website, method,
	mx_checked, has_mx, extracted_at, expires_at`

func encodeEmails(emails []string) (string, error) {
	if emails == nil {
		emails = []string{}
	}
	data, err := json.Marshal(emails)
	if err != nil {
		return "", fmt.Errorf("failed to encode emails: %w", err)
	}
	return string(data), nil
}

func decodeEmails(data string) ([]string, error) {
	emails := []string{}
	if data == "" {
		return emails, nil
	}
	if err := json.Unmarshal([]byte(data), &emails); err != nil {
		return nil, fmt.Errorf("failed to decode emails: %w", err)
	}
	return emails, nil
}

// runCleanup calls cleanup every freq until stopCh is closed
func runCleanup(freq time.Duration, stopCh <-chan struct{}, cleanup func(context.Context) error, logger *zap.Logger) {
	if freq <= 0 {
		return
	}

	ticker := time.NewTicker(freq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := cleanup(context.Background()); err != nil {
				logger.Error("Failed to clean up store", zap.Error(err))
			}
		case <-stopCh:
			return
		}
	}
}

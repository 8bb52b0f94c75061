package core

import (
	"errors"
	"time"
)

var (
	// ErrRecordNotFound is returned when no unexpired record exists for a reference
	ErrRecordNotFound = errors.New("contact record not found")
	// ErrStoreDisabled is returned by lookups when no store is configured
	ErrStoreDisabled = errors.New("result store disabled")
	// ErrMissingReference is returned for postings without a job reference
	ErrMissingReference = errors.New("job posting has no reference")
)

// Extraction methods recorded on a ContactRecord
const (
	MethodEngine = "engine"
	MethodAssist = "assist"
)

// JobPosting is one fetched job-detail page
type JobPosting struct {
	Reference string `json:"reference"`
	SourceURL string `json:"source_url"`
	Employer  string `json:"employer"`
	HTML      string `json:"html"`
	// Refresh bypasses a stored record and re-extracts
	Refresh bool `json:"refresh"`
}

// ContactRecord is the persisted extraction result for one posting
type ContactRecord struct {
	Reference          string    `json:"reference" yaml:"reference"`
	SourceURL          string    `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	Employer           string    `json:"employer,omitempty" yaml:"employer,omitempty"`
	NormalizedEmployer string    `json:"normalized_employer,omitempty" yaml:"normalized_employer,omitempty"`
	Emails             []string  `json:"emails" yaml:"emails"`
	EmailCount         int       `json:"email_count" yaml:"email_count"`
	BestEmail          string    `json:"best_email" yaml:"best_email"`
	HasEmails          bool      `json:"has_emails" yaml:"has_emails"`
	Domain             string    `json:"company_domain,omitempty" yaml:"company_domain,omitempty"`
	BaseDomain         string    `json:"base_domain,omitempty" yaml:"base_domain,omitempty"`
	ApplicationWebsite string    `json:"application_website,omitempty" yaml:"application_website,omitempty"`
	Method             string    `json:"method" yaml:"method"`
	MXChecked          bool      `json:"mx_checked" yaml:"mx_checked"`
	HasMX              bool      `json:"has_mx" yaml:"has_mx"`
	ExtractedAt        time.Time `json:"extracted_at" yaml:"extracted_at"`
	ExpiresAt          time.Time `json:"expires_at" yaml:"expires_at"`
}

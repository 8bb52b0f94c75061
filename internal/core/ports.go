package core

import (
	"context"
)

// ResultRepository defines the interface for persisting contact records
type ResultRepository interface {
	// Get retrieves the unexpired record for a job reference
	Get(ctx context.Context, reference string) (*ContactRecord, error)

	// Upsert stores a record, replacing any record with the same reference
	Upsert(ctx context.Context, record *ContactRecord) error

	// Delete removes the record for a job reference
	Delete(ctx context.Context, reference string) error

	// Cleanup removes expired records
	Cleanup(ctx context.Context) error
}

// ContactAssistant suggests contact addresses when the engine finds none
type ContactAssistant interface {
	SuggestContacts(ctx context.Context, posting *JobPosting) ([]string, error)
}

// DomainVerifier checks whether a domain accepts mail
type DomainVerifier interface {
	HasMX(ctx context.Context, domain string) (bool, error)
}

// Notifier announces newly found contacts
type Notifier interface {
	NotifyContact(ctx context.Context, record *ContactRecord) error
}

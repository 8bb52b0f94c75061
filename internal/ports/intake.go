package ports

import (
	"context"

	"github.com/mikey/job-contact-extractor/internal/core"
)

// Intake defines the interface for the channels postings arrive on
type Intake interface {
	// ProcessPosting processes a posting and returns the stored contact record
	ProcessPosting(ctx context.Context, posting *core.JobPosting) (*core.ContactRecord, error)

	// Start starts the intake
	Start() error

	// Stop stops the intake
	Stop() error
}

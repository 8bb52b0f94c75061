package intake

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mikey/job-contact-extractor/internal/core"
	"go.uber.org/zap"
)

// CLIIntake processes a single posting and prints a summary
type CLIIntake struct {
	service *core.ContactService
	logger  *zap.Logger
	verbose bool
	out     io.Writer
}

// NewCLIIntake creates a new CLI intake writing to stdout
func NewCLIIntake(service *core.ContactService, logger *zap.Logger, verbose bool) *CLIIntake {
	return &CLIIntake{
		service: service,
		logger:  logger,
		verbose: verbose,
		out:     os.Stdout,
	}
}

// ProcessPosting processes a posting and displays the results
func (i *CLIIntake) ProcessPosting(ctx context.Context, posting *core.JobPosting) (*core.ContactRecord, error) {
	i.logger.Debug("Processing posting", zap.String("reference", posting.Reference))

	fmt.Fprintf(i.out, "\n=== Posting Summary ===\n")
	fmt.Fprintf(i.out, "Reference: %s\n", posting.Reference)
	fmt.Fprintf(i.out, "Employer: %s\n", posting.Employer)
	if posting.SourceURL != "" {
		fmt.Fprintf(i.out, "Source: %s\n", posting.SourceURL)
	}
	fmt.Fprintf(i.out, "HTML length: %d bytes\n", len(posting.HTML))

	if i.verbose {
		preview := posting.HTML
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Fprintf(i.out, "\nHTML preview:\n%s\n", preview)
	}

	startTime := time.Now()
	record, err := i.service.ProcessPosting(ctx, posting)
	if err != nil {
		i.logger.Error("Failed to process posting", zap.Error(err))
		fmt.Fprintf(i.out, "Error: %v\n", err)
		return nil, err
	}
	duration := time.Since(startTime)

	fmt.Fprintf(i.out, "\n=== Results ===\n")
	fmt.Fprintf(i.out, "Emails found: %d\n", record.EmailCount)
	if record.HasEmails {
		fmt.Fprintf(i.out, "Best email: %s\n", record.BestEmail)
		fmt.Fprintf(i.out, "All emails: %s\n", strings.Join(record.Emails, ", "))
		fmt.Fprintf(i.out, "Company domain: %s\n", record.Domain)
		fmt.Fprintf(i.out, "Base domain: %s\n", record.BaseDomain)
	}
	if record.ApplicationWebsite != "" {
		fmt.Fprintf(i.out, "Application website: %s\n", record.ApplicationWebsite)
	}
	if record.MXChecked {
		fmt.Fprintf(i.out, "MX records: %t\n", record.HasMX)
	}
	fmt.Fprintf(i.out, "Method: %s\n", record.Method)
	fmt.Fprintf(i.out, "Processing time: %v\n", duration)

	return record, nil
}

// Start is a no-op for the CLI intake
func (i *CLIIntake) Start() error {
	return nil
}

// Stop is a no-op for the CLI intake
func (i *CLIIntake) Stop() error {
	return nil
}

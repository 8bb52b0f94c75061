package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikey/job-contact-extractor/internal/domainlist"
	"github.com/mikey/job-contact-extractor/internal/extractor"
	"go.uber.org/zap"
)

// ContactService is the core service for contact extraction
type ContactService struct {
	extractor    *extractor.Extractor
	store        ResultRepository
	logger       *zap.Logger
	storeEnabled bool
	ttl          time.Duration
	ignored      *domainlist.Checker
	assistant    ContactAssistant
	verifier     DomainVerifier
	notifier     Notifier
	now          func() time.Time
}

// Option configures optional collaborators of the ContactService
type Option func(*ContactService)

// WithAssistant enables the LLM fallback for postings without addresses
func WithAssistant(assistant ContactAssistant) Option {
	return func(s *ContactService) {
		s.assistant = assistant
	}
}

// WithVerifier enables MX verification of the best address
func WithVerifier(verifier DomainVerifier) Option {
	return func(s *ContactService) {
		s.verifier = verifier
	}
}

// WithNotifier enables notifications for postings with addresses
func WithNotifier(notifier Notifier) Option {
	return func(s *ContactService) {
		s.notifier = notifier
	}
}

// WithIgnoredDomains drops addresses of the given domains, e.g. job boards
// and staffing agencies that relay applications
func WithIgnoredDomains(checker *domainlist.Checker) Option {
	return func(s *ContactService) {
		s.ignored = checker
	}
}

// NewContactService creates a new contact service
func NewContactService(
	ext *extractor.Extractor,
	store ResultRepository,
	logger *zap.Logger,
	storeEnabled bool,
	ttl time.Duration,
	opts ...Option,
) *ContactService {
	s := &ContactService{
		extractor:    ext,
		store:        store,
		logger:       logger,
		storeEnabled: storeEnabled && store != nil,
		ttl:          ttl,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract runs the extraction engine and drops ignored domains
func (s *ContactService) Extract(html, employer string) extractor.Result {
	result := s.extractor.Extract(html, employer)

	if s.ignored.Len() > 0 && result.EmailCount > 0 {
		result = result.Filter(func(email string) bool {
			return !s.ignored.Contains(email)
		})
	}

	s.logger.Debug("Extraction finished",
		zap.Int("tokens", result.Diagnostics.Tokens),
		zap.Int("candidates", result.Diagnostics.Candidates),
		zap.Int("rejected", result.Diagnostics.Rejected),
		zap.Int("repaired", result.Diagnostics.Repaired),
		zap.Int("mailto", result.Diagnostics.Mailto),
		zap.Int("email_count", result.EmailCount))

	return result
}

// ProcessPosting extracts, verifies, stores and announces the contacts of a posting
func (s *ContactService) ProcessPosting(ctx context.Context, posting *JobPosting) (*ContactRecord, error) {
	if posting == nil || strings.TrimSpace(posting.Reference) == "" {
		return nil, ErrMissingReference
	}

	// Check store if enabled
	if s.storeEnabled && !posting.Refresh {
		record, err := s.store.Get(ctx, posting.Reference)
		if err == nil {
			s.logger.Debug("Store hit for posting", zap.String("reference", posting.Reference))
			return record, nil
		}
		if !errors.Is(err, ErrRecordNotFound) {
			s.logger.Warn("Failed to read stored record",
				zap.String("reference", posting.Reference),
				zap.Error(err))
		}
	}

	result := s.Extract(posting.HTML, posting.Employer)
	method := MethodEngine

	if result.EmailCount == 0 && s.assistant != nil {
		if assisted, ok := s.assist(ctx, posting); ok {
			result = assisted
			method = MethodAssist
		}
	}

	record := s.newRecord(posting, result, method)

	if s.verifier != nil && record.Domain != "" {
		hasMX, err := s.verifier.HasMX(ctx, record.Domain)
		if err != nil {
			s.logger.Warn("MX verification failed",
				zap.String("domain", record.Domain),
				zap.Error(err))
		} else {
			record.MXChecked = true
			record.HasMX = hasMX
		}
	}

	// Update store with result if enabled
	if s.storeEnabled {
		if err := s.store.Upsert(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to store contact record %s: %w", record.Reference, err)
		}
	}

	if s.notifier != nil && record.HasEmails {
		if err := s.notifier.NotifyContact(ctx, record); err != nil {
			s.logger.Warn("Failed to send notification",
				zap.String("reference", record.Reference),
				zap.Error(err))
		}
	}

	s.logger.Info("Processed posting",
		zap.String("reference", record.Reference),
		zap.String("employer", record.Employer),
		zap.Int("email_count", record.EmailCount),
		zap.String("best_email", record.BestEmail),
		zap.String("method", record.Method))

	return record, nil
}

// Lookup returns the stored record for a job reference
func (s *ContactService) Lookup(ctx context.Context, reference string) (*ContactRecord, error) {
	if !s.storeEnabled {
		return nil, ErrStoreDisabled
	}
	return s.store.Get(ctx, reference)
}

// Forget removes the stored record for a job reference
func (s *ContactService) Forget(ctx context.Context, reference string) error {
	if !s.storeEnabled {
		return ErrStoreDisabled
	}
	return s.store.Delete(ctx, reference)
}

// assist asks the assistant for addresses and re-validates them with the engine
func (s *ContactService) assist(ctx context.Context, posting *JobPosting) (extractor.Result, bool) {
	suggestions, err := s.assistant.SuggestContacts(ctx, posting)
	if err != nil {
		s.logger.Warn("Contact assistant failed",
			zap.String("reference", posting.Reference),
			zap.Error(err))
		return extractor.Result{}, false
	}

	result := s.Extract(strings.Join(suggestions, " "), posting.Employer)
	s.logger.Debug("Contact assistant answered",
		zap.String("reference", posting.Reference),
		zap.Int("suggested", len(suggestions)),
		zap.Int("accepted", result.EmailCount))

	return result, result.EmailCount > 0
}

func (s *ContactService) newRecord(posting *JobPosting, result extractor.Result, method string) *ContactRecord {
	now := s.now().UTC()
	return &ContactRecord{
		Reference:          posting.Reference,
		SourceURL:          posting.SourceURL,
		Employer:           strings.TrimSpace(posting.Employer),
		NormalizedEmployer: NormalizeEmployer(posting.Employer),
		Emails:             result.Emails,
		EmailCount:         result.EmailCount,
		BestEmail:          result.BestEmail,
		HasEmails:          result.EmailCount > 0,
		Domain:             result.Domain,
		BaseDomain:         result.BaseDomain,
		ApplicationWebsite: result.ApplicationWebsite,
		Method:             method,
		ExtractedAt:        now,
		ExpiresAt:          now.Add(s.ttl),
	}
}

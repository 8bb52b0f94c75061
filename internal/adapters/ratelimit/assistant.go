package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/mikey/job-contact-extractor/internal/core"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Assistant throttles a ContactAssistant with a shared token bucket and
// bounds every call with a timeout
type Assistant struct {
	next    core.ContactAssistant
	limiter *rate.Limiter
	timeout time.Duration
	logger  *zap.Logger
}

// NewAssistant wraps next. A non-positive rps disables throttling.
func NewAssistant(next core.ContactAssistant, rps float64, burst int, timeout time.Duration, logger *zap.Logger) *Assistant {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst < 1 {
		burst = 1
	}

	return &Assistant{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
		timeout: timeout,
		logger:  logger,
	}
}

// SuggestContacts waits for a token and forwards the call
func (a *Assistant) SuggestContacts(ctx context.Context, posting *core.JobPosting) ([]string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	if waited := time.Since(start); waited > 100*time.Millisecond {
		a.logger.Debug("Contact assistant throttled",
			zap.String("reference", posting.Reference),
			zap.Duration("waited", waited))
	}

	return a.next.SuggestContacts(ctx, posting)
}

package mxcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/zap"
)

// Verifier checks for MX records by querying the configured resolvers in order
type Verifier struct {
	client  *dns.Client
	servers []string
	logger  *zap.Logger
}

// NewVerifier creates a verifier querying servers ("host:port") over UDP
func NewVerifier(servers []string, timeout time.Duration, logger *zap.Logger) *Verifier {
	return &Verifier{
		client:  &dns.Client{Timeout: timeout},
		servers: servers,
		logger:  logger,
	}
}

// HasMX reports whether domain publishes at least one MX record. NXDOMAIN
// is a definite false; only transport failures on every server are errors.
func (v *Verifier) HasMX(ctx context.Context, domain string) (bool, error) {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if domain == "" {
		return false, nil
	}
	if len(v.servers) == 0 {
		return false, errors.New("no DNS servers configured")
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeMX)

	var lastErr error
	for _, server := range v.servers {
		resp, _, err := v.client.ExchangeContext(ctx, msg, server)
		if err != nil {
			v.logger.Debug("MX query failed",
				zap.String("domain", domain),
				zap.String("server", server),
				zap.Error(err))
			lastErr = err
			continue
		}

		switch resp.Rcode {
		case dns.RcodeSuccess:
			return countMX(resp) > 0, nil
		case dns.RcodeNameError:
			return false, nil
		default:
			lastErr = fmt.Errorf("server %s answered %s", server, dns.RcodeToString[resp.Rcode])
		}
	}

	return false, fmt.Errorf("MX lookup for %s failed: %w", domain, lastErr)
}

func countMX(resp *dns.Msg) int {
	n := 0
	for _, rr := range resp.Answer {
		if _, ok := rr.(*dns.MX); ok {
			n++
		}
	}
	return n
}

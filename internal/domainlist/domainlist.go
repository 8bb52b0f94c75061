package domainlist

import (
	"strings"

	"go.uber.org/zap"
)

// Checker matches e-mail addresses against a list of domains. A listed
// domain also covers its subdomains.
type Checker struct {
	domains []string
	logger  *zap.Logger
}

// NewChecker creates a new domain list checker
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	// Normalize domains (lowercase, no leading @ or dot)
	normalizedDomains := make([]string, 0, len(domains))
	for _, domain := range domains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		domain = strings.TrimLeft(domain, "@.")
		if domain != "" {
			normalizedDomains = append(normalizedDomains, domain)
		}
	}

	if len(normalizedDomains) > 0 && logger != nil {
		logger.Info("Initialized domain list", zap.Strings("domains", normalizedDomains))
	}

	return &Checker{
		domains: normalizedDomains,
		logger:  logger,
	}
}

// Len returns the number of listed domains
func (c *Checker) Len() int {
	if c == nil {
		return 0
	}
	return len(c.domains)
}

// Contains checks if the domain of an e-mail address is listed
func (c *Checker) Contains(email string) bool {
	if c.Len() == 0 {
		return false
	}

	// Extract domain from email address
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := strings.ToLower(email[at+1:])

	for _, listed := range c.domains {
		if domain == listed || strings.HasSuffix(domain, "."+listed) {
			if c.logger != nil {
				c.logger.Debug("Domain is listed",
					zap.String("domain", domain),
					zap.String("email", email))
			}
			return true
		}
	}

	return false
}

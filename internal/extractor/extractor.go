// Package extractor finds employer contact e-mail addresses in job-posting HTML.
//
// The pipeline is deliberately text based: angle brackets are blanked out,
// common obfuscations such as "(at)" and "[punkt]" are reversed, and every
// whitespace-separated token that carries an @ is validated on its own.
// mailto: anchors are added from a parsed copy of the document.
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"
)

// Diagnostics counts what each stage discarded or added
type Diagnostics struct {
	Tokens     int `json:"tokens" yaml:"tokens"`
	Candidates int `json:"candidates" yaml:"candidates"`
	Unmatched  int `json:"unmatched" yaml:"unmatched"`
	Repaired   int `json:"repaired" yaml:"repaired"`
	Rejected   int `json:"rejected" yaml:"rejected"`
	Mailto     int `json:"mailto" yaml:"mailto"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
	Portals    int `json:"portals" yaml:"portals"`
}

// Result is the outcome of one extraction
type Result struct {
	Emails             []string    `json:"emails" yaml:"emails"`
	EmailCount         int         `json:"email_count" yaml:"email_count"`
	BestEmail          string      `json:"best_email" yaml:"best_email"`
	Domain             string      `json:"domain,omitempty" yaml:"domain,omitempty"`
	BaseDomain         string      `json:"base_domain,omitempty" yaml:"base_domain,omitempty"`
	ApplicationWebsite string      `json:"application_website,omitempty" yaml:"application_website,omitempty"`
	Diagnostics        Diagnostics `json:"diagnostics" yaml:"diagnostics"`
}

// Joined returns the e-mails as a single ", " separated string
func (r Result) Joined() string {
	return strings.Join(r.Emails, ", ")
}

// Filter returns a copy of r holding only the e-mails accepted by keep.
// Count, best e-mail and domains are recomputed; order is preserved.
func (r Result) Filter(keep func(email string) bool) Result {
	out := r
	out.Emails = make([]string, 0, len(r.Emails))
	for _, email := range r.Emails {
		if keep(email) {
			out.Emails = append(out.Emails, email)
		}
	}
	out.assemble()
	return out
}

// assemble derives count, best e-mail and domains from Emails
func (r *Result) assemble() {
	r.EmailCount = len(r.Emails)
	r.BestEmail, r.Domain, r.BaseDomain = "", "", ""
	if r.EmailCount == 0 {
		return
	}
	r.BestEmail = r.Emails[0]
	r.Domain = DomainOf(r.BestEmail)
	r.BaseDomain = BaseDomain(r.Domain)
}

// DomainOf returns the part of email after the @, or "" when there is none
func DomainOf(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// BaseDomain returns the registrable domain (eTLD+1) of domain, falling back
// to domain itself when the public suffix list has no answer.
func BaseDomain(domain string) string {
	if domain == "" {
		return ""
	}
	base, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain
	}
	return base
}

// Extractor runs the extraction pipeline. It is immutable after New and
// safe for concurrent use.
type Extractor struct {
	cfg             Config
	denylist        []string
	weights         []Weight
	companyBonus    int
	websiteDenylist []string
	portalHosts     []portalHost
	suffixRules     []suffixRule
}

// New creates an Extractor for cfg. Lists are used as given; pass
// DefaultConfig() for the built-in policy.
func New(cfg Config) *Extractor {
	weights := make([]Weight, 0, len(cfg.Weights))
	for _, w := range cfg.Weights {
		kw := strings.ToLower(strings.TrimSpace(w.Keyword))
		if kw != "" {
			weights = append(weights, Weight{Keyword: kw, Score: w.Score})
		}
	}

	return &Extractor{
		cfg:             cfg,
		denylist:        lowerAll(cfg.Denylist),
		weights:         weights,
		companyBonus:    cfg.CompanyBonus,
		websiteDenylist: lowerAll(cfg.WebsiteDenylist),
		portalHosts:     compilePortalHosts(cfg.PortalDomains),
		suffixRules:     compileSuffixRules(cfg.SuffixTLDs, cfg.Suffixes),
	}
}

// Extract returns the contact e-mails found in html, most relevant first.
// companyName is optional and only influences ordering. Extract never fails;
// input without usable addresses yields an empty result.
func (e *Extractor) Extract(html, companyName string) Result {
	result := Result{Emails: []string{}}
	if strings.TrimSpace(html) == "" {
		return result
	}

	diag := &result.Diagnostics
	seen := make(map[string]struct{})
	emails := make([]string, 0, 4)
	add := func(email string) bool {
		if _, dup := seen[email]; dup {
			diag.Duplicates++
			return false
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
		return true
	}

	text := normalizeObfuscation(stripTags(e.prepare(html)))
	tokens := tokenize(text)
	diag.Tokens = len(tokens)
	for _, token := range tokens {
		if email, ok := e.candidate(token, diag); ok {
			add(email)
		}
	}

	var doc *goquery.Document
	parsed := false
	document := func() *goquery.Document {
		if !parsed {
			parsed = true
			d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
			if err == nil {
				doc = d
			}
		}
		return doc
	}

	if containsFold(html, mailtoScheme) {
		if d := document(); d != nil {
			for _, addr := range mailtoAddresses(d) {
				if email, ok := e.candidate(addr, diag); ok && add(email) {
					diag.Mailto++
				}
			}
		}
	}

	result.Emails = e.rank(emails, companyName)
	result.assemble()

	if result.EmailCount == 0 && containsFold(html, "href") {
		if d := document(); d != nil {
			result.ApplicationWebsite = e.applicationWebsite(d, diag)
		}
	}
	return result
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

package extractor

import (
	"net/url"
	"sort"
	"strings"
)

// Portal categories used by the built-in portal table
const (
	PortalJobBoard   = "job_portal"
	PortalSocial     = "social_media"
	PortalReview     = "review_platform"
	PortalGeneric    = "generic_platform"
	PortalMedia      = "media"
	PortalECommerce  = "ecommerce"
	PortalEducation  = "education"
	PortalStructural = "structural_portal"
)

// portalPathIndicators mark shared-platform pages. Two or more in one path
// classify the link as a portal even on an unknown host.
var portalPathIndicators = []string{
	"/job/", "/jobs/", "/stellenanzeige/", "/anzeige/",
	"/profile/", "/company/", "/unternehmen/",
	"/bewertung/", "/review/", "/rating/",
	"/portal/", "/platform/", "/service/",
}

type portalHost struct {
	host     string
	category string
}

func compilePortalHosts(domains map[string][]string) []portalHost {
	categories := make([]string, 0, len(domains))
	for category := range domains {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	hosts := make([]portalHost, 0, 64)
	for _, category := range categories {
		for _, host := range lowerAll(domains[category]) {
			hosts = append(hosts, portalHost{host: host, category: category})
		}
	}
	return hosts
}

// PortalCategory reports whether rawURL points at a job board, social
// network or other shared platform rather than an employer's own site.
func (e *Extractor) PortalCategory(rawURL string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" && parsed.Scheme == "" {
		// bare host such as "stepstone.de/job/1"
		host = strings.ToLower(strings.SplitN(parsed.Path, "/", 2)[0])
	}
	for _, p := range e.portalHosts {
		if host == p.host || strings.HasSuffix(host, "."+p.host) {
			return p.category, true
		}
	}

	path := strings.ToLower(parsed.EscapedPath()) + "/"
	hits := 0
	for _, indicator := range portalPathIndicators {
		if strings.Contains(path, indicator) {
			hits++
		}
	}
	if hits >= 2 {
		return PortalStructural, true
	}
	return "", false
}

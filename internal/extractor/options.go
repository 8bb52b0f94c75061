package extractor

// Weight adds Score to every e-mail containing Keyword.
type Weight struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Score   int    `json:"score" yaml:"score"`
}

// Config holds the policy tables used by the extraction pipeline.
// All matching is done on lowercase text.
type Config struct {
	// Denylist rejects any candidate containing one of these substrings
	Denylist []string
	// Suffixes are boilerplate words glued directly after a TLD
	Suffixes []string
	// SuffixTLDs are the TLDs after which suffix repair is attempted
	SuffixTLDs []string
	// Weights is the relevance table applied when more than one e-mail is found
	Weights []Weight
	// CompanyBonus is added when an e-mail contains the employer name
	CompanyBonus int
	// DecodeEntities decodes HTML character references before normalization
	DecodeEntities bool
	// FoldUnicode applies NFKC folding so full-width and compatibility forms normalize
	FoldUnicode bool
	// WebsiteDenylist lists hosts never returned as application website
	WebsiteDenylist []string
	// PortalDomains maps a portal category to its hosts. Links to these
	// hosts, and their subdomains, are never taken as the employer's website.
	PortalDomains map[string][]string
}

var (
	defaultDenylist = []string{
		"arbeitsagentur", "webmaster", "datenschutz", "privacy",
		"noreply", "no-reply", "example.com", "test.com",
		".jpg", ".jpeg", ".png", ".gif", ".css", ".js",
		"wixpress", "google.com", "facebook.com", "linkedin.com", "xing.com",
	}

	defaultSuffixes = []string{
		"kontaktaufnahme", "nachricht", "bewerbung", "karriere", "jobs",
		"stellenangebot", "anzeige", "info", "mail", "email",
		"kontakt", "impressum", "datenschutz",
	}

	defaultSuffixTLDs = []string{"com", "de", "net", "org", "ch", "at"}

	defaultWeights = []Weight{
		{Keyword: "bewerbung", Score: 10},
		{Keyword: "karriere", Score: 10},
		{Keyword: "jobs", Score: 8},
		{Keyword: "hr", Score: 6},
		{Keyword: "personal", Score: 6},
		{Keyword: "info", Score: -2},
		{Keyword: "contact", Score: -2},
		{Keyword: "office", Score: -1},
	}

	defaultWebsiteDenylist = []string{
		"arbeitsagentur.de", "google.com", "facebook.com", "linkedin.com", "xing.com",
	}
)

var defaultPortalDomains = map[string][]string{
	PortalJobBoard: {
		"stepstone.de", "stepstone.com", "stepstone.at", "stepstone.ch",
		"indeed.com", "indeed.de", "indeed.at", "indeed.ch",
		"xing.com", "xing.de", "linkedin.com", "linkedin.de",
		"monster.de", "monster.com", "monster.at", "monster.ch",
		"jobware.de", "jobware.com", "stellenanzeigen.de", "jobs.de",
		"arbeitsagentur.de", "karriere.at", "jobs.at",
		"jobscout24.de", "jobscout24.at", "jobscout24.ch",
		"stellenwerk.de", "jobvector.de", "jobvector.com",
		"get-in-it.de", "get-in-engineering.de", "academics.de", "academics.com",
		"jobkanal.de", "stellenportal.de", "meinestadt.de", "kalaydo.de",
		"ebay-kleinanzeigen.de", "kleinanzeigen.de", "quoka.de",
		"jobrapido.de", "jooble.de", "neuvoo.de", "glassdoor.de", "glassdoor.com",
		"jobindex.de", "thelocal.de",
	},
	PortalSocial: {
		"facebook.com", "fb.com", "instagram.com", "twitter.com", "x.com",
		"youtube.com", "tiktok.com", "snapchat.com", "pinterest.com",
		"whatsapp.com", "telegram.org", "discord.com", "reddit.com", "tumblr.com", "vk.com",
	},
	PortalReview: {
		"kununu.com", "kununu.de", "bewertungsportal.de", "golocal.de",
		"yelp.com", "yelp.de", "tripadvisor.de", "trustpilot.com", "trustpilot.de",
		"proven-expert.com", "provenexpert.com",
	},
	PortalGeneric: {
		"google.com", "google.de", "google.at", "google.ch",
		"microsoft.com", "apple.com", "wordpress.com", "blogger.com",
		"wix.com", "squarespace.com", "weebly.com", "jimdo.com", "1und1.de", "strato.de",
		"github.com", "gitlab.com", "bitbucket.org", "stackoverflow.com", "stackexchange.com",
	},
	PortalMedia: {
		"bild.de", "spiegel.de", "focus.de", "zeit.de", "faz.net", "sueddeutsche.de",
		"tagesschau.de", "n-tv.de", "rtl.de", "sat1.de", "prosieben.de",
		"cnn.com", "bbc.com", "reuters.com",
	},
	PortalECommerce: {
		"ebay.de", "ebay.com", "amazon.de", "amazon.com", "otto.de",
		"zalando.de", "zalando.com", "alibaba.com", "aliexpress.com",
		"idealo.de", "preisvergleich.de",
	},
	PortalEducation: {
		"moodle.org", "edx.org", "coursera.org", "udemy.com",
		"khan-academy.org", "wikipedia.org", "wikipedia.de",
	},
}

// DefaultCompanyBonus is the score added for an employer-name match
const DefaultCompanyBonus = 15

// DefaultConfig returns the built-in policy. The slices are copies and may be
// modified by the caller.
func DefaultConfig() Config {
	return Config{
		Denylist:        DefaultDenylist(),
		Suffixes:        DefaultSuffixes(),
		SuffixTLDs:      DefaultSuffixTLDs(),
		Weights:         DefaultWeights(),
		CompanyBonus:    DefaultCompanyBonus,
		DecodeEntities:  true,
		FoldUnicode:     true,
		WebsiteDenylist: DefaultWebsiteDenylist(),
		PortalDomains:   DefaultPortalDomains(),
	}
}

// DefaultDenylist returns a copy of the built-in denylist
func DefaultDenylist() []string {
	return append([]string(nil), defaultDenylist...)
}

// DefaultSuffixes returns a copy of the built-in contamination suffixes
func DefaultSuffixes() []string {
	return append([]string(nil), defaultSuffixes...)
}

// DefaultSuffixTLDs returns a copy of the TLDs eligible for suffix repair
func DefaultSuffixTLDs() []string {
	return append([]string(nil), defaultSuffixTLDs...)
}

// DefaultWeights returns a copy of the built-in scoring table
func DefaultWeights() []Weight {
	return append([]Weight(nil), defaultWeights...)
}

// DefaultWebsiteDenylist returns a copy of the hosts skipped for application websites
func DefaultWebsiteDenylist() []string {
	return append([]string(nil), defaultWebsiteDenylist...)
}

// DefaultPortalDomains returns a copy of the built-in portal table
func DefaultPortalDomains() map[string][]string {
	out := make(map[string][]string, len(defaultPortalDomains))
	for category, hosts := range defaultPortalDomains {
		out[category] = append([]string(nil), hosts...)
	}
	return out
}

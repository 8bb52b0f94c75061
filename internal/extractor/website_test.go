package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_ApplicationWebsite(t *testing.T) {
	ext := New(DefaultConfig())

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "detail application link",
			html: `<a href="https://www.arbeitsagentur.de/jobsuche">Jobsuche</a>
				<a id="detail-bewerbung-url" href="https://karriere.firma.de/stelle/123">Bewerben</a>`,
			want: "https://karriere.firma.de/stelle/123",
		},
		{
			name: "phrase in parent text",
			html: `<a href="https://www.firma.de/">Startseite</a>
				<p>Bewerben Sie sich über <a href="www.firma.de/portal">unser Portal</a></p>`,
			want: "https://www.firma.de/portal",
		},
		{
			name: "phrase in link text",
			html: `<a href="https://firma.de/">Home</a><a href="https://apply.firma.de/x">Jetzt bewerben!</a>`,
			want: "https://apply.firma.de/x",
		},
		{
			name: "url hint",
			html: `<a href="https://firma.de/">Home</a><a href="https://firma.de/karriere">Mehr</a>`,
			want: "https://firma.de/karriere",
		},
		{
			name: "first external link skips denylisted hosts",
			html: `<a href="https://www.arbeitsagentur.de/x">BA</a>
				<a href="https://de.linkedin.com/company/firma">LinkedIn</a>
				<a href="https://firma.de">Firma</a>`,
			want: "https://firma.de",
		},
		{
			name: "job board link is not the employer website",
			html: `<a href="https://www.stepstone.de/stellenangebote--Lagerist-123.html">Zur Anzeige</a>`,
			want: "",
		},
		{
			name: "portal links skipped before employer link",
			html: `<a href="https://de.indeed.com/viewjob?jk=1">Indeed</a>
				<a href="https://www.kununu.com/de/firma">Bewertungen</a>
				<a href="https://www.instagram.com/firma">Instagram</a>
				<a href="https://www.firma.de/">Firma</a>`,
			want: "https://www.firma.de/",
		},
		{
			name: "portal application link with phrase is skipped",
			html: `<p>Jetzt bewerben: <a href="https://www.stepstone.de/bewerbung/42">hier</a></p>
				<a href="https://firma.de/karriere">Karriere</a>`,
			want: "https://firma.de/karriere",
		},
		{
			name: "detail link on a portal falls through",
			html: `<a id="detail-bewerbung-url" href="https://www.monster.de/job/123">Bewerben</a>
				<a href="https://www.firma.de">Firma</a>`,
			want: "https://www.firma.de",
		},
		{
			name: "structural portal path",
			html: `<a href="https://www.regionaljobs.example/company/firma/review/">Profil</a>
				<a href="https://firma.de/jobs/42">Stelle</a>`,
			want: "https://firma.de/jobs/42",
		},
		{
			name: "relative and mailto links are ignored",
			html: `<a href="/jobs/42">Details</a><a href="mailto:noreply@firma.de">x</a><a href="javascript:void(0)">y</a>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ext.Extract(tt.html, "")
			assert.Empty(t, got.Emails)
			assert.Equal(t, tt.want, got.ApplicationWebsite)
		})
	}
}

func TestExtract_ApplicationWebsiteOnlyWithoutEmails(t *testing.T) {
	got := New(DefaultConfig()).Extract(`<a href="https://firma.de/karriere">Karriere</a> bewerbung@firma.de`, "")
	assert.Equal(t, []string{"bewerbung@firma.de"}, got.Emails)
	assert.Empty(t, got.ApplicationWebsite)
}

func TestExtract_PortalDiagnostics(t *testing.T) {
	got := New(DefaultConfig()).Extract(`<a href="https://www.stepstone.de/x">a</a><a href="https://de.indeed.com/viewjob?jk=1">b</a>`, "")
	assert.Empty(t, got.ApplicationWebsite)
	assert.Equal(t, 2, got.Diagnostics.Portals)
}

func TestPortalCategory(t *testing.T) {
	ext := New(DefaultConfig())

	tests := []struct {
		url      string
		category string
		portal   bool
	}{
		{"https://www.stepstone.de/stellenangebote--Lagerist-123.html", PortalJobBoard, true},
		{"https://de.indeed.com/viewjob?jk=1", PortalJobBoard, true},
		{"https://www.glassdoor.de/Bewertungen/firma", PortalJobBoard, true},
		{"https://www.kununu.com/de/firma", PortalReview, true},
		{"https://instagram.com/firma", PortalSocial, true},
		{"https://www.google.de/maps", PortalGeneric, true},
		{"stepstone.de/job/1", PortalJobBoard, true},
		{"https://portal.example/unternehmen/firma/bewertung/", PortalStructural, true},
		{"https://firma.de/jobs/42", "", false},
		{"https://www.firma.de/karriere", "", false},
		{"https://notstepstone.de/", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			category, portal := ext.PortalCategory(tt.url)
			assert.Equal(t, tt.portal, portal)
			assert.Equal(t, tt.category, category)
		})
	}
}

func TestPortalCategory_EmptyTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PortalDomains = nil
	category, portal := New(cfg).PortalCategory("https://www.stepstone.de/x")
	assert.False(t, portal)
	assert.Empty(t, category)
}

func TestNormalizeWebsite(t *testing.T) {
	assert.Equal(t, "https://www.firma.de", normalizeWebsite(" www.firma.de "))
	assert.Equal(t, "http://firma.de/a?b=c", normalizeWebsite("http://firma.de/a?b=c"))
	assert.Equal(t, "", normalizeWebsite("ftp://firma.de"))
	assert.Equal(t, "", normalizeWebsite("https://"))
	assert.Equal(t, "", normalizeWebsite("#top"))
}

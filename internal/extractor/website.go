package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// applicationPhrases are link texts German postings use to point at the
// employer's own application form
var applicationPhrases = []string{
	"über die internetseite des arbeitgebers",
	"bewerben sie sich über",
	"online-bewerbung",
	"online bewerbung",
	"jetzt bewerben",
	"website des arbeitgebers",
	"zur bewerbung",
	"bewerbungsportal",
	"karriereseite",
}

var applicationURLHints = []string{"bewerbung", "karriere", "career", "jobs", "stellenangebot"}

// applicationWebsite guesses the employer's application URL when a posting
// carries no contact address
func (e *Extractor) applicationWebsite(doc *goquery.Document, diag *Diagnostics) string {
	if href, ok := doc.Find("#detail-bewerbung-url").Attr("href"); ok {
		if u := normalizeWebsite(href); u != "" {
			if _, portal := e.PortalCategory(u); !portal {
				return u
			}
		}
	}

	links := doc.Find("a[href]")
	links.Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if u := normalizeWebsite(href); u != "" {
			if _, portal := e.PortalCategory(u); portal {
				diag.Portals++
			}
		}
	})

	if u := e.firstLink(links, func(sel *goquery.Selection, _ string) bool {
		text := sel.Text()
		// top-level anchors would otherwise inherit the whole page text
		if parent := sel.Parent(); parent.Length() > 0 {
			if name := goquery.NodeName(parent); name != "body" && name != "html" {
				text += " " + parent.Text()
			}
		}
		text = strings.ToLower(text)
		for _, phrase := range applicationPhrases {
			if strings.Contains(text, phrase) {
				return true
			}
		}
		return false
	}); u != "" {
		return u
	}

	if u := e.firstLink(links, func(_ *goquery.Selection, u string) bool {
		lower := strings.ToLower(u)
		for _, hint := range applicationURLHints {
			if strings.Contains(lower, hint) {
				return true
			}
		}
		return false
	}); u != "" {
		return u
	}

	return e.firstLink(links, func(*goquery.Selection, string) bool { return true })
}

// firstLink returns the first external link accepted by match that is
// neither denylisted nor a portal
func (e *Extractor) firstLink(links *goquery.Selection, match func(*goquery.Selection, string) bool) string {
	var found string
	links.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		u := normalizeWebsite(href)
		if u == "" || e.websiteDenied(u) {
			return true
		}
		if _, portal := e.PortalCategory(u); portal {
			return true
		}
		if match(sel, u) {
			found = u
			return false
		}
		return true
	})
	return found
}

func (e *Extractor) websiteDenied(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return true
	}
	host := strings.ToLower(parsed.Hostname())
	for _, denied := range e.websiteDenylist {
		if host == denied || strings.HasSuffix(host, "."+denied) {
			return true
		}
	}
	return false
}

// normalizeWebsite accepts http(s) and bare www. links and returns an absolute URL
func normalizeWebsite(href string) string {
	href = strings.TrimSpace(href)
	lower := strings.ToLower(href)

	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
	case strings.HasPrefix(lower, "www."):
		href = "https://" + href
	default:
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.String()
}

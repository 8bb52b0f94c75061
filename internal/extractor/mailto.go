package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const mailtoScheme = "mailto:"

// mailtoAddresses collects the raw recipients of every mailto: anchor in doc
func mailtoAddresses(doc *goquery.Document) []string {
	var addresses []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if len(href) < len(mailtoScheme) || !strings.EqualFold(href[:len(mailtoScheme)], mailtoScheme) {
			return
		}

		target := href[len(mailtoScheme):]
		if i := strings.IndexByte(target, '?'); i >= 0 {
			target = target[:i]
		}
		if unescaped, err := url.PathUnescape(target); err == nil {
			target = unescaped
		}

		for _, addr := range strings.Split(target, ",") {
			addr = strings.TrimSpace(addr)
			if addr != "" {
				addresses = append(addresses, addr)
			}
		}
	})
	return addresses
}

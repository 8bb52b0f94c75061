package extractor

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

var (
	zeroWidthReplacer = strings.NewReplacer(
		"\u200b", "",
		"\u200c", "",
		"\u200d", "",
		"\ufeff", "",
	)
	tagReplacer = strings.NewReplacer("<", " ", ">", " ")

	// [\s\p{Zs}] also covers no-break and thin spaces when folding is off
	atBracketRe  = regexp.MustCompile(`(?i)\(at\)|\[at\]|\{at\}`)
	atWordRe     = regexp.MustCompile(`(?i)[\s\p{Zs}]+at[\s\p{Zs}]+`)
	atSpaceRe    = regexp.MustCompile(`[\s\p{Zs}]*@[\s\p{Zs}]*`)
	dotBracketRe = regexp.MustCompile(`(?i)\(dot\)|\[dot\]|\{dot\}|\(punkt\)|\[punkt\]`)
	dotWordRe    = regexp.MustCompile(`(?i)[\s\p{Zs}]+dot[\s\p{Zs}]+`)

	// spacedEmailRe matches "user@domain . com", "user@domain. de" and
	// "user@domain.co . uk". A space after the dot is only crossed when the
	// next label starts lowercase, so "info@firma.de. Danke" and
	// "info@firma.de . Weitere" keep their sentence break.
	spacedEmailRe = regexp.MustCompile(`\w+@[\w-]+(?:[\s\p{Zs}]*\.(?:[\s\p{Zs}]+[a-z][\w-]*|[\w-]+))+`)
)

// prepare decodes and folds the raw input before the pipeline sees it
func (e *Extractor) prepare(text string) string {
	if e.cfg.DecodeEntities && strings.IndexByte(text, '&') >= 0 {
		text = html.UnescapeString(text)
	}
	text = zeroWidthReplacer.Replace(text)
	if e.cfg.FoldUnicode {
		text = norm.NFKC.String(text)
	}
	return text
}

// stripTags turns every angle bracket into a space
func stripTags(text string) string {
	return tagReplacer.Replace(text)
}

// normalizeObfuscation reverses the usual anti-scraping spellings of @ and dot
func normalizeObfuscation(text string) string {
	text = atBracketRe.ReplaceAllString(text, "@")
	text = atWordRe.ReplaceAllString(text, "@")
	text = atSpaceRe.ReplaceAllString(text, "@")

	text = dotBracketRe.ReplaceAllString(text, ".")
	text = dotWordRe.ReplaceAllString(text, ".")

	return spacedEmailRe.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Join(strings.Fields(m), "")
	})
}

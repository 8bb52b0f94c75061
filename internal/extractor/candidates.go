package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// validEmailRe is the final shape every returned address must have
	validEmailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[a-z]{2,}$`)
)

// suffixRule truncates boilerplate glued after a known TLD
type suffixRule struct {
	re *regexp.Regexp
}

func compileSuffixRules(tlds, suffixes []string) []suffixRule {
	if len(tlds) == 0 || len(suffixes) == 0 {
		return nil
	}

	quoted := make([]string, 0, len(tlds))
	for _, tld := range tlds {
		tld = strings.ToLower(strings.TrimSpace(tld))
		if tld != "" {
			quoted = append(quoted, regexp.QuoteMeta(tld))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	tldGroup := strings.Join(quoted, "|")

	rules := make([]suffixRule, 0, len(suffixes))
	for _, suffix := range suffixes {
		suffix = strings.ToLower(strings.TrimSpace(suffix))
		if suffix == "" {
			continue
		}
		rules = append(rules, suffixRule{
			re: regexp.MustCompile(`(?i)\.(` + tldGroup + `)` + regexp.QuoteMeta(suffix) + `.*$`),
		})
	}
	return rules
}

// isWordChar reports whether r is an ASCII word character
func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

// tokenize splits text on whitespace and keeps the @-bearing tokens
func tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, 8)
	for _, field := range fields {
		if !strings.Contains(field, "@") {
			continue
		}
		if utf8.RuneCountInString(field) <= 3 {
			continue
		}
		if strings.Trim(field, "@") == "" {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// trimToken drops leading punctuation (keeping @) and trailing punctuation (keeping .)
func trimToken(token string) string {
	token = strings.TrimLeftFunc(token, func(r rune) bool {
		return !isWordChar(r) && r != '@'
	})
	return strings.TrimRightFunc(token, func(r rune) bool {
		return !isWordChar(r) && r != '.'
	})
}

// matchEmail returns the first loose e-mail shape in token, lowercased
func matchEmail(token string) (string, bool) {
	m := emailRe.FindString(trimToken(token))
	if m == "" {
		return "", false
	}
	return strings.ToLower(m), true
}

// repairSuffix cuts boilerplate glued onto the domain, e.g. "firma.dekontakt".
// Only the domain part is rewritten.
func (e *Extractor) repairSuffix(email string) (string, bool) {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return email, false
	}
	local, domain := email[:at], email[at+1:]

	repaired := false
	for _, rule := range e.suffixRules {
		if rule.re.MatchString(domain) {
			domain = rule.re.ReplaceAllString(domain, ".${1}")
			repaired = true
		}
	}
	return local + "@" + domain, repaired
}

// rejected reports whether a candidate fails validity or the denylist
func (e *Extractor) rejected(email string) bool {
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return true
	}
	if strings.Count(email, "@") != 1 || !validEmailRe.MatchString(email) {
		return true
	}
	for _, pattern := range e.denylist {
		if strings.Contains(email, pattern) {
			return true
		}
	}
	return false
}

// candidate runs a single token through extraction, repair and filtering
func (e *Extractor) candidate(token string, diag *Diagnostics) (string, bool) {
	email, ok := matchEmail(token)
	if !ok {
		diag.Unmatched++
		return "", false
	}
	diag.Candidates++

	email, repaired := e.repairSuffix(email)
	if repaired {
		diag.Repaired++
	}

	if e.rejected(email) {
		diag.Rejected++
		return "", false
	}
	return email, true
}

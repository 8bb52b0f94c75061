package extractor

import (
	"sort"
	"strings"
)

// rank orders emails by relevance. Lists with fewer than two entries are
// returned untouched. Ties keep first-occurrence order.
func (e *Extractor) rank(emails []string, companyName string) []string {
	if len(emails) < 2 {
		return emails
	}

	name := strings.ToLower(strings.TrimSpace(companyName))
	compact := strings.Join(strings.Fields(name), "")

	scores := make(map[string]int, len(emails))
	for _, email := range emails {
		scores[email] = e.score(email, name, compact)
	}

	ranked := append([]string(nil), emails...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

// score sums the keyword weights matching email
func (e *Extractor) score(email, name, compact string) int {
	total := 0
	for _, w := range e.weights {
		if strings.Contains(email, w.Keyword) {
			total += w.Score
		}
	}
	if name != "" && (strings.Contains(email, name) || strings.Contains(email, compact)) {
		total += e.companyBonus
	}
	return total
}

// Per-request de-duplication of scraped results. The same store shows up
// under several DOM elements on one results page, so dedup runs on every
// search; nothing is remembered across requests.

package dedup

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-eats-agent/internal/scraper"
)

// Key is a candidate's identity: URL when present, else normalized name.
// Empty means the candidate has no usable identity.
func Key(c scraper.Candidate) string {
	if c.URL != "" {
		return c.URL
	}
	return NormalizeName(c.Name)
}

// NormalizeName folds width variants (full-width latin, digits) and case so
// that cosmetic rendering differences don't defeat dedup.
func NormalizeName(name string) string {
	result, _, err := transform.String(norm.NFKC, name)
	if err != nil {
		result = name
	}
	return strings.ToLower(strings.TrimSpace(result))
}

// Candidates drops later duplicates, preserving first-occurrence order.
// Idempotent: running it on its own output is a no-op.
func Candidates(in []scraper.Candidate) []scraper.Candidate {
	seen := mapset.NewSet[string]()
	out := make([]scraper.Candidate, 0, len(in))

	for _, c := range in {
		key := Key(c)
		if key == "" {
			continue
		}
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)
		out = append(out, c)
	}

	return out
}

// MenuItems dedupes recovered menu lines by name, first occurrence wins.
func MenuItems(in []scraper.MenuItem) []scraper.MenuItem {
	seen := mapset.NewSet[string]()
	out := make([]scraper.MenuItem, 0, len(in))

	for _, item := range in {
		key := NormalizeName(item.Name)
		if key == "" || seen.Contains(key) {
			continue
		}
		seen.Add(key)
		out = append(out, item)
	}

	return out
}

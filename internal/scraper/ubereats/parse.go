// Pure text parsers for the extraction pipelines. Card and store-page text
// is unstable line soup; these recover structured fields from it and are
// kept free of browser handles so they stay unit-testable.

package ubereats

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go-eats-agent/internal/scraper"
)

// findETALine returns the first line carrying a duration-unit marker,
// e.g. "25 分鐘" or "20-35 min".
func findETALine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "分鐘") || strings.Contains(strings.ToLower(line), "min") {
			return line
		}
	}
	return ""
}

// parseRatingToken scans for the combined rating+review token, usually
// rendered as "4.9 (5,000+)" or split across lines as "4.9\n(5,000+)".
// The first segment is the rating when it parses as a float in [0,5]; the
// second is the raw review count.
func parseRatingToken(text string) (*float64, string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !hasDigit(line) {
			continue
		}
		if !strings.Contains(line, ".") && !strings.Contains(line, "(") {
			continue
		}

		parts := strings.SplitN(line, "(", 2)

		var rating *float64
		if v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err == nil && v >= 0 && v <= 5 {
			rating = &v
		}

		review := ""
		if len(parts) == 2 {
			review = strings.TrimSpace(strings.ReplaceAll(parts[1], ")", ""))
		}

		return rating, review
	}
	return nil, ""
}

// normalizeURL resolves relative store paths against the site origin.
func normalizeURL(origin, href string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return origin + href
	default:
		return origin + "/" + href
	}
}

// parseMenuText recovers one menu item from an element's flattened text.
// The element qualifies only if it mentions a price; within it, the first
// line without the currency marker (and long enough to be a dish name) is
// the name, the first priced line is the price, and the first leftover
// non-price line becomes the description. Items lacking a name or a price
// are discarded (nil).
func parseMenuText(text string) *scraper.MenuItem {
	if !strings.Contains(text, "$") {
		return nil
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	item := scraper.MenuItem{}

	for _, line := range lines {
		if !strings.Contains(line, "$") && utf8.RuneCountInString(line) > 3 {
			item.Name = line
			break
		}
	}

	for _, line := range lines {
		if strings.Contains(line, "$") {
			item.Price = line
			break
		}
	}

	for _, line := range lines {
		if !strings.Contains(line, "$") && line != item.Name {
			item.Description = line
			break
		}
	}

	if item.Name == "" || item.Price == "" {
		return nil
	}
	return &item
}

// extractBodyRating finds a bare numeric rating among short body-text lines.
func extractBodyRating(text string) *float64 {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		n := utf8.RuneCountInString(line)
		if n <= 1 || n >= 5 {
			continue
		}
		if v, err := strconv.ParseFloat(line, 64); err == nil && v >= 0 && v <= 5 {
			return &v
		}
	}
	return nil
}

// extractBodyReviewCount finds a "(5,000+)" style token or a "ratings" line.
func extractBodyReviewCount(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "(") && strings.Contains(line, ")") && hasDigit(line) {
			return line
		}
		if strings.Contains(strings.ToLower(line), "rating") && hasDigit(line) {
			return line
		}
	}
	return ""
}

// findFeeLine returns the first priced line mentioning any of the keywords
// (case-insensitive). Used for delivery fee, service fee and minimum order.
func findFeeLine(text string, keywords []string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "$") {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return line
			}
		}
	}
	return ""
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

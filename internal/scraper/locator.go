package scraper

import (
	"github.com/playwright-community/playwright-go"
)

// Strategy is one rule for finding a page element. Strategies are tried in
// slice order with a short per-strategy timeout; a miss falls through to the
// next entry and exhausting the chain is not an error, just "not found".
type Strategy struct {
	Name     string
	Selector string
}

// FirstVisible walks the strategy chain on a page and returns the first
// locator that becomes visible within timeoutMs.
func FirstVisible(page playwright.Page, strategies []Strategy, timeoutMs float64) (playwright.Locator, bool) {
	for _, s := range strategies {
		loc := page.Locator(s.Selector).First()
		if err := loc.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(timeoutMs),
		}); err == nil {
			return loc, true
		}
	}
	return nil, false
}

// FirstVisibleIn is FirstVisible scoped to an element (e.g. one result card).
func FirstVisibleIn(root playwright.Locator, strategies []Strategy, timeoutMs float64) (playwright.Locator, bool) {
	for _, s := range strategies {
		loc := root.Locator(s.Selector).First()
		if err := loc.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(timeoutMs),
		}); err == nil {
			return loc, true
		}
	}
	return nil, false
}

// AllMatching returns every element for the first strategy that yields at
// least one match.
func AllMatching(page playwright.Page, strategies []Strategy) ([]playwright.Locator, string) {
	for _, s := range strategies {
		elements, err := page.Locator(s.Selector).All()
		if err != nil {
			continue
		}
		if len(elements) > 0 {
			return elements, s.Name
		}
	}
	return nil, ""
}

// InnerText reads an element's text with a tight timeout, returning ""
// instead of an error when the element refuses to settle.
func InnerText(loc playwright.Locator, timeoutMs float64) string {
	text, err := loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(timeoutMs),
	})
	if err != nil {
		return ""
	}
	return text
}

package ubereats

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-eats-agent/internal/browser"
	"go-eats-agent/internal/config"
	"go-eats-agent/internal/dedup"
	"go-eats-agent/internal/scraper"
)

var storeNameStrategies = []scraper.Strategy{
	{Name: "h1", Selector: "h1"},
	{Name: "store-title testid", Selector: "[data-testid='store-title']"},
}

const scrollIncrements = 3

// MenuScraper pulls the detail record for a single store page.
type MenuScraper struct {
	page   playwright.Page
	origin string
}

func NewMenuScraper(page playwright.Page, cfg *config.Config) *MenuScraper {
	return &MenuScraper{page: page, origin: cfg.SiteOrigin}
}

// ScrapeStore navigates to a store page and recovers its menu plus the
// store-level fields the page happens to expose. Menu items are found by
// scanning every list/button/link element for a currency marker; the DOM
// carries no stable menu markup worth trusting.
func (m *MenuScraper) ScrapeStore(ctx context.Context, storeURL string, menuLimit int) (*scraper.StoreDetail, error) {
	log.Printf("📖 Scraping store: %s", storeURL)

	if _, err := m.page.Goto(storeURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, fmt.Errorf("failed to open store page: %w", err)
	}
	time.Sleep(landingSettle)

	//scroll to trigger lazy rendering before any extraction
	if err := browser.LazyScroll(m.page, scrollIncrements); err != nil {
		log.Printf("⚠️ Scroll failed: %v. Extracting what rendered.", err)
	}

	detail := &scraper.StoreDetail{}

	if nameEl, ok := scraper.FirstVisible(m.page, storeNameStrategies, locatorTimeoutMs); ok {
		detail.Name = scraper.InnerText(nameEl, fieldTimeoutMs)
	}

	if bodyText, err := m.page.InnerText("body"); err == nil {
		detail.Rating = extractBodyRating(bodyText)
		detail.ReviewCount = extractBodyReviewCount(bodyText)
		detail.DeliveryFee = findFeeLine(bodyText, []string{"運費", "delivery", "fee"})
		detail.ServiceFee = findFeeLine(bodyText, []string{"服務費", "service"})
		detail.MinOrder = findFeeLine(bodyText, []string{"最低", "minimum"})
	}

	items, err := m.extractMenuItems(ctx, menuLimit)
	if err != nil {
		return nil, err
	}
	detail.MenuItems = items

	log.Printf("✅ Extracted %d menu items", len(detail.MenuItems))
	return detail, nil
}

func (m *MenuScraper) extractMenuItems(ctx context.Context, limit int) ([]scraper.MenuItem, error) {
	elements, err := m.page.Locator("li, button, a").All()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate menu elements: %w", err)
	}

	var items []scraper.MenuItem
	for _, elem := range elements {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if limit > 0 && len(items) >= limit {
			break
		}

		text := scraper.InnerText(elem, fieldTimeoutMs)
		if text == "" {
			continue
		}
		if item := parseMenuText(text); item != nil {
			items = append(items, *item)
		}
	}

	return dedup.MenuItems(items), nil
}

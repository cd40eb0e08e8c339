package ubereats

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-eats-agent/internal/config"
	"go-eats-agent/internal/dedup"
	"go-eats-agent/internal/scraper"
	"go-eats-agent/utils"
)

// ErrSearchBoxNotFound means the landing page rendered without any of the
// known search inputs. This is a job-level failure, not a per-field miss.
var ErrSearchBoxNotFound = errors.New("search box not found")

// Strategy chains are ordered by reliability: test ids first, then layout
// guesses. The site renames attributes without notice, so none of these is
// authoritative on its own.
var searchBoxStrategies = []scraper.Strategy{
	{Name: "suggestions input", Selector: "input[data-testid='search-suggestions-input']"},
	{Name: "placeholder zh", Selector: "input[placeholder*='搜尋']"},
	{Name: "placeholder en", Selector: "input[placeholder*='Search']"},
	{Name: "named input", Selector: "input[type='text'][name*='search']"},
}

var cardStrategies = []scraper.Strategy{
	{Name: "store-card testid", Selector: "[data-testid*='store-card']"},
	{Name: "store link", Selector: "a[href*='/store/']"},
}

var nameStrategies = []scraper.Strategy{
	{Name: "h3", Selector: "h3"},
	{Name: "h4", Selector: "h4"},
	{Name: "store-title", Selector: "[data-test*='store-title']"},
}

const (
	locatorTimeoutMs = 2000.0
	fieldTimeoutMs   = 500.0
	landingSettle    = 3 * time.Second
	resultsSettle    = 4 * time.Second
)

// Searcher drives keyword search against the marketplace on one page handle.
type Searcher struct {
	page       playwright.Page
	origin     string
	screenshot *utils.ScreenShotDebugger
}

func NewSearcher(page playwright.Page, cfg *config.Config) *Searcher {
	return &Searcher{
		page:       page,
		origin:     cfg.SiteOrigin,
		screenshot: utils.NewScreenShotDebugger(),
	}
}

// Search types the keyword into the site search box and returns up to limit
// de-duplicated candidates in card traversal order. Zero candidates is a
// valid outcome, not an error.
func (s *Searcher) Search(ctx context.Context, keyword string, limit int) ([]scraper.Candidate, error) {
	log.Printf("🔍 Searching for: %s", keyword)

	if _, err := s.page.Goto(s.origin+"/tw", playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, fmt.Errorf("failed to open landing page: %w", err)
	}
	time.Sleep(landingSettle)

	box, ok := scraper.FirstVisible(s.page, searchBoxStrategies, locatorTimeoutMs)
	if !ok {
		s.screenshot.CaptureAndLog(s.page, "search-box-missing", "🚨 Search box not found on landing page")
		return nil, ErrSearchBoxNotFound
	}

	if err := box.Click(); err != nil {
		return nil, fmt.Errorf("failed to focus search box: %w", err)
	}
	time.Sleep(500 * time.Millisecond)
	if err := box.Fill(keyword); err != nil {
		return nil, fmt.Errorf("failed to type keyword: %w", err)
	}
	time.Sleep(500 * time.Millisecond)
	if err := box.Press("Enter"); err != nil {
		return nil, fmt.Errorf("failed to submit search: %w", err)
	}

	log.Println("⏳ Waiting for search results...")
	time.Sleep(resultsSettle)

	cards, strategy := scraper.AllMatching(s.page, cardStrategies)
	if len(cards) == 0 {
		s.screenshot.CaptureAndLog(s.page, "no-result-cards", "⚠️ No restaurant cards found")
		return nil, nil
	}
	log.Printf("📦 Found %d cards using: %s", len(cards), strategy)

	var results []scraper.Candidate
	for _, card := range cards {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		candidate := s.parseCard(card)
		if candidate.Usable() {
			results = append(results, candidate)
		}
	}

	unique := dedup.Candidates(results)
	//truncate after dedup, keeping traversal order; ranking happens later
	limited := unique
	if limit > 0 && len(limited) > limit {
		limited = limited[:limit]
	}

	log.Printf("✅ %d raw → %d unique → %d returned", len(results), len(unique), len(limited))
	return limited, nil
}

// parseCard extracts best-effort fields from one result card. A field the
// card refuses to yield stays empty; only a fully empty card is dropped.
func (s *Searcher) parseCard(card playwright.Locator) scraper.Candidate {
	candidate := scraper.Candidate{}

	if nameEl, ok := scraper.FirstVisibleIn(card, nameStrategies, fieldTimeoutMs); ok {
		candidate.Name = strings.TrimSpace(scraper.InnerText(nameEl, fieldTimeoutMs))
	}

	text := scraper.InnerText(card, fieldTimeoutMs)
	if text != "" {
		candidate.ETA = findETALine(text)
		candidate.Rating, candidate.ReviewCount = parseRatingToken(text)
	}

	candidate.URL = s.extractURL(card)

	return candidate
}

// extractURL tries, in order: the card being a link itself, the first
// descendant store link, then any descendant link pointing at a store path.
func (s *Searcher) extractURL(card playwright.Locator) string {
	if tag, err := card.Evaluate("el => el.tagName", nil); err == nil {
		if name, ok := tag.(string); ok && strings.EqualFold(name, "a") {
			if href, err := card.GetAttribute("href"); err == nil && href != "" {
				return normalizeURL(s.origin, href)
			}
		}
	}

	if links, err := card.Locator("a[href*='/store/']").All(); err == nil && len(links) > 0 {
		if href, err := links[0].GetAttribute("href"); err == nil && href != "" {
			return normalizeURL(s.origin, href)
		}
	}

	if links, err := card.Locator("a").All(); err == nil {
		for _, link := range links {
			if href, err := link.GetAttribute("href"); err == nil && strings.Contains(href, "/store/") {
				return normalizeURL(s.origin, href)
			}
		}
	}

	return ""
}

// The per-job pipeline: translate the request, open a fresh browsing
// context, search, score, and shape the top-N cards. One run owns its
// context for its whole lifetime and releases it on every exit path.

package agent

import (
	"context"
	"fmt"
	"log"

	"go-eats-agent/internal/browser"
	"go-eats-agent/internal/config"
	"go-eats-agent/internal/intent"
	"go-eats-agent/internal/queue"
	"go-eats-agent/internal/recommend"
	"go-eats-agent/internal/scoring"
	"go-eats-agent/internal/scraper"
	"go-eats-agent/internal/scraper/ubereats"
)

type Agent struct {
	cfg       *config.Config
	manager   *browser.Manager
	engine    *scoring.Engine
	generator *recommend.Generator
}

func New(cfg *config.Config, manager *browser.Manager) *Agent {
	engine := scoring.NewEngine(cfg)
	return &Agent{
		cfg:       cfg,
		manager:   manager,
		engine:    engine,
		generator: recommend.NewGenerator(cfg, engine),
	}
}

// Run executes one request end to end. Satisfies queue.Pipeline.
func (a *Agent) Run(ctx context.Context, text string) (*queue.Result, error) {
	it := intent.Translate(text)
	query := it.SearchQuery()
	log.Printf("🧠 Intent parsed, search query: %s", query)

	candidates, err := a.search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, queue.ErrNoResults
	}

	scored := a.engine.Score(candidates, it)
	recs := a.generator.TopN(scored, it, a.cfg.TopN)

	return &queue.Result{
		Recommendations: recs,
		TotalFound:      len(candidates),
	}, nil
}

func (a *Agent) search(ctx context.Context, query string) ([]scraper.Candidate, error) {
	browserCtx, err := a.manager.NewContext(a.cfg.AuthStatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire browsing context: %w", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	searcher := ubereats.NewSearcher(page, a.cfg)
	return searcher.Search(ctx, query, a.cfg.SearchLimit)
}

// ScrapeStore pulls the detail record for one store page. Used by the CLI;
// the chat flow ranks on search cards alone.
func (a *Agent) ScrapeStore(ctx context.Context, storeURL string) (*scraper.StoreDetail, error) {
	browserCtx, err := a.manager.NewContext(a.cfg.AuthStatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire browsing context: %w", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	menu := ubereats.NewMenuScraper(page, a.cfg)
	return menu.ScrapeStore(ctx, storeURL, a.cfg.MenuLimit)
}

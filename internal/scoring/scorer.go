// Multi-factor scoring of search candidates against the parsed intent.
// Deterministic and pure: same candidates + same intent = same ranking.
// All numeric boundaries come from config defaults and are hand-tuned;
// do not re-derive them.

package scoring

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go-eats-agent/internal/config"
	"go-eats-agent/internal/intent"
	"go-eats-agent/internal/scraper"
)

// Breakdown holds the five component scores (each in [0,1]) and the
// weighted total. Never mutated after creation; rescoring produces a new
// breakdown.
type Breakdown struct {
	PreferenceMatch float64 `json:"preference_match"`
	Price           float64 `json:"price"`
	ETA             float64 `json:"eta"`
	Rating          float64 `json:"rating"`
	Popularity      float64 `json:"popularity"`
	Total           float64 `json:"total"`
}

// Scored is a candidate annotated with its breakdown.
type Scored struct {
	scraper.Candidate
	Breakdown Breakdown `json:"score_detail"`
}

type Engine struct {
	weights       config.Weights
	priceTiers    []config.PriceTier
	defaultPrice  int
	tasteKeywords map[string][]string
	genericStores []string
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		weights:       cfg.ScoreWeights,
		priceTiers:    cfg.PriceTiers,
		defaultPrice:  cfg.DefaultPrice,
		tasteKeywords: cfg.TasteKeywords,
		genericStores: cfg.GenericStores,
	}
}

var (
	firstIntPattern    = regexp.MustCompile(`(\d+)`)
	reviewCountPattern = regexp.MustCompile(`([\d,]+)`)
)

// Score annotates every candidate with a breakdown and returns them sorted
// descending by total. The sort is stable: equal totals retain input order.
func (e *Engine) Score(candidates []scraper.Candidate, it intent.Intent) []Scored {
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, Scored{
			Candidate: c,
			Breakdown: e.breakdown(c, it),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Breakdown.Total > scored[j].Breakdown.Total
	})

	return scored
}

func (e *Engine) breakdown(c scraper.Candidate, it intent.Intent) Breakdown {
	b := Breakdown{
		PreferenceMatch: e.scorePreference(c, it),
		Price:           e.scorePrice(c, it),
		ETA:             e.scoreETA(c, it),
		Rating:          e.scoreRating(c),
		Popularity:      e.scorePopularity(c),
	}

	total := b.PreferenceMatch*e.weights.PreferenceMatch +
		b.Price*e.weights.Price +
		b.ETA*e.weights.ETA +
		b.Rating*e.weights.Rating +
		b.Popularity*e.weights.Popularity
	b.Total = math.Round(total*100) / 100

	return b
}

// scorePrice rewards fuller budget use; exceeding the budget is punished at
// twice the excess ratio.
func (e *Engine) scorePrice(c scraper.Candidate, it intent.Intent) float64 {
	if it.BudgetMax == nil {
		return 0.8
	}
	budget := float64(*it.BudgetMax)
	estimate := float64(e.EstimatePrice(c.Name))

	if estimate > budget {
		excess := (estimate - budget) / budget
		return math.Max(0, 1-excess*2)
	}
	return estimate / budget
}

// EstimatePrice buckets a store by name keywords into a representative
// price point. Default tier when nothing matches.
func (e *Engine) EstimatePrice(name string) int {
	lower := strings.ToLower(name)
	for _, tier := range e.priceTiers {
		for _, kw := range tier.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return tier.Price
			}
		}
	}
	return e.defaultPrice
}

func (e *Engine) scoreETA(c scraper.Candidate, it intent.Intent) float64 {
	m := firstIntPattern.FindStringSubmatch(c.ETA)
	if m == nil {
		return 0.5
	}
	eta, _ := strconv.ParseFloat(m[1], 64)

	if it.ETAMaxMinutes != nil {
		ceiling := float64(*it.ETAMaxMinutes)
		if eta > ceiling {
			excess := (eta - ceiling) / ceiling
			return math.Max(0, 1-excess*2)
		}
		return 1 - (eta/ceiling)*0.5
	}

	if eta <= 30 {
		return 1.0
	}
	return math.Max(0, 1-(eta-30)/60)
}

// scoreRating normalizes the 0-5 star rating, with a bonus pushing already
// excellent stores ahead of merely good ones.
func (e *Engine) scoreRating(c scraper.Candidate) float64 {
	if c.Rating == nil {
		return 0.5
	}
	normalized := *c.Rating / 5.0
	if *c.Rating >= 4.5 {
		return math.Min(1.0, normalized+0.1)
	}
	return normalized
}

// scorePreference tests the store name against the per-tag keyword lists.
// Generic convenience stores score below ordinary non-matches so they never
// outrank a real restaurant on a tasted request.
func (e *Engine) scorePreference(c scraper.Candidate, it intent.Intent) float64 {
	if len(it.Preferences) == 0 {
		return 0.7
	}

	name := strings.ToLower(c.Name)

	matchCount := 0
	for _, pref := range it.Preferences {
		for _, kw := range e.tasteKeywords[pref] {
			if strings.Contains(name, strings.ToLower(kw)) {
				matchCount++
				break
			}
		}
	}

	if matchCount > 0 {
		return math.Min(1.0, 0.85+float64(matchCount)*0.15)
	}

	for _, generic := range e.genericStores {
		if strings.Contains(name, strings.ToLower(generic)) {
			return 0.25
		}
	}

	return 0.3
}

func (e *Engine) scorePopularity(c scraper.Candidate) float64 {
	m := reviewCountPattern.FindStringSubmatch(c.ReviewCount)
	if m == nil {
		return 0.5
	}

	countStr := strings.ReplaceAll(m[1], ",", "")
	countStr = strings.TrimSuffix(countStr, "+")
	count, err := strconv.ParseFloat(countStr, 64)
	if err != nil {
		return 0.5
	}

	switch {
	case count >= 1000:
		return math.Min(1.0, 0.8+(count-1000)/10000)
	case count >= 100:
		return 0.5 + (count-100)/900*0.3
	default:
		return 0.3 + count/100*0.2
	}
}

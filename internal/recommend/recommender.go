// Turn ranked candidates into presentable recommendation cards with a short
// human-readable reason derived from the score breakdown.

package recommend

import (
	"fmt"
	"net/url"
	"strings"

	"go-eats-agent/internal/config"
	"go-eats-agent/internal/intent"
	"go-eats-agent/internal/scoring"
)

// Recommendation is one card in the final top-N payload.
type Recommendation struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	RatingDisplay string  `json:"rating"`
	ETADisplay    string  `json:"eta"`
	PriceEstimate string  `json:"price_estimate"`
	Reason        string  `json:"reason"`
	URL           string  `json:"url"`
	Score         float64 `json:"score"`
}

type Generator struct {
	origin string
	engine *scoring.Engine
}

func NewGenerator(cfg *config.Config, engine *scoring.Engine) *Generator {
	return &Generator{origin: cfg.SiteOrigin, engine: engine}
}

// TopN builds cards for the first n ranked candidates.
func (g *Generator) TopN(scored []scoring.Scored, it intent.Intent, n int) []Recommendation {
	if n > len(scored) {
		n = len(scored)
	}

	recs := make([]Recommendation, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, g.card(scored[i], it, i+1))
	}
	return recs
}

func (g *Generator) card(s scoring.Scored, it intent.Intent, rank int) Recommendation {
	name := s.Name
	if name == "" {
		name = "未知店家"
	}

	ratingText := "評分未知"
	if s.Rating != nil {
		ratingText = fmt.Sprintf("⭐ %.1f", *s.Rating)
	}
	if s.ReviewCount != "" {
		ratingText += fmt.Sprintf(" (%s)", s.ReviewCount)
	}

	eta := s.ETA
	if eta == "" {
		eta = "未知"
	}

	return Recommendation{
		Rank:          rank,
		Name:          name,
		RatingDisplay: ratingText,
		ETADisplay:    "⏱ " + eta,
		PriceEstimate: fmt.Sprintf("約$%d", g.engine.EstimatePrice(s.Name)),
		Reason:        g.reason(s, it, rank),
		URL:           g.safeURL(s.URL),
		Score:         s.Breakdown.Total,
	}
}

// reason names the components that stood out. Thresholds mirror the scoring
// bands: a component only becomes a selling point when it scored high.
func (g *Generator) reason(s scoring.Scored, it intent.Intent, rank int) string {
	var reasons []string
	b := s.Breakdown

	if b.Rating >= 0.9 && s.Rating != nil {
		reasons = append(reasons, fmt.Sprintf("高評分 %.1f分", *s.Rating))
	}

	if b.ETA >= 0.8 && s.ETA != "" {
		reasons = append(reasons, fmt.Sprintf("快速送達 (%s)", s.ETA))
	}

	if b.PreferenceMatch >= 0.8 {
		switch {
		case contains(it.Preferences, "spicy"):
			reasons = append(reasons, "符合辣味需求")
		case contains(it.Preferences, "light"):
			reasons = append(reasons, "符合清淡口味")
		}
	}

	if b.Price >= 0.7 {
		if it.BudgetMax != nil {
			reasons = append(reasons, fmt.Sprintf("符合預算 ($%d內)", *it.BudgetMax))
		} else {
			reasons = append(reasons, "價格合理")
		}
	}

	if b.Popularity >= 0.8 {
		reasons = append(reasons, "熱門店家")
	}

	if len(reasons) == 0 {
		reasons = []string{"綜合表現良好"}
	}

	return fmt.Sprintf("[TOP %d] 推薦理由：%s", rank, strings.Join(reasons, " + "))
}

// safeURL guarantees a usable https destination: store paths get their
// non-ASCII segments escaped, anything unusable falls back to the origin.
func (g *Generator) safeURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "http") {
		return g.origin + "/tw"
	}

	if idx := strings.Index(raw, "/store/"); idx >= 0 {
		base := raw[:idx+len("/store/")]
		path := raw[idx+len("/store/"):]
		return base + escapePath(path)
	}

	return raw
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

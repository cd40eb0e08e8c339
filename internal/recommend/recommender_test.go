package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-eats-agent/internal/config"
	"go-eats-agent/internal/intent"
	"go-eats-agent/internal/scoring"
	"go-eats-agent/internal/scraper"
)

func newGenerator() (*Generator, *scoring.Engine) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	engine := scoring.NewEngine(cfg)
	return NewGenerator(cfg, engine), engine
}

func TestTopN(t *testing.T) {
	gen, engine := newGenerator()

	high := 4.9
	low := 3.5
	scored := engine.Score([]scraper.Candidate{
		{Name: "高分店", Rating: &high, ReviewCount: "(2,000+)", ETA: "15 分鐘", URL: "https://www.ubereats.com/store/abc"},
		{Name: "普通店", Rating: &low, ETA: "40 分鐘"},
	}, intent.Intent{})

	recs := gen.TopN(scored, intent.Intent{}, 3)
	require.Len(t, recs, 2)

	assert.Equal(t, 1, recs[0].Rank)
	assert.Equal(t, "高分店", recs[0].Name)
	assert.Contains(t, recs[0].RatingDisplay, "4.9")
	assert.Contains(t, recs[0].RatingDisplay, "2,000+")
	assert.Contains(t, recs[0].ETADisplay, "15 分鐘")
	assert.Contains(t, recs[0].Reason, "高評分")
	assert.Equal(t, "https://www.ubereats.com/store/abc", recs[0].URL)

	assert.Equal(t, 2, recs[1].Rank)
}

func TestCard_MissingFieldsGetPlaceholders(t *testing.T) {
	gen, engine := newGenerator()

	scored := engine.Score([]scraper.Candidate{{Name: "沒資料的店"}}, intent.Intent{})
	recs := gen.TopN(scored, intent.Intent{}, 1)
	require.Len(t, recs, 1)

	assert.Equal(t, "評分未知", recs[0].RatingDisplay)
	assert.Equal(t, "⏱ 未知", recs[0].ETADisplay)
	assert.Equal(t, "https://www.ubereats.com/tw", recs[0].URL)
	assert.NotEmpty(t, recs[0].Reason)
}

func TestSafeURL_EscapesStorePath(t *testing.T) {
	gen, _ := newGenerator()

	escaped := gen.safeURL("https://www.ubereats.com/tw/store/小吃店/xyz123")
	assert.True(t, strings.HasPrefix(escaped, "https://www.ubereats.com/tw/store/"))
	assert.NotContains(t, escaped, "小吃店")
	assert.Contains(t, escaped, "/xyz123")

	//non-http values fall back to the origin
	assert.Equal(t, "https://www.ubereats.com/tw", gen.safeURL("javascript:void(0)"))
	assert.Equal(t, "https://www.ubereats.com/tw", gen.safeURL(""))
}

func TestReason_BudgetMention(t *testing.T) {
	gen, engine := newGenerator()

	budget := 200
	it := intent.Intent{BudgetMax: &budget}
	//default tier estimate 200 exactly fills the budget -> price component 1.0
	scored := engine.Score([]scraper.Candidate{{Name: "某餐廳", ETA: "20 分鐘"}}, it)
	recs := gen.TopN(scored, it, 1)
	require.Len(t, recs, 1)

	assert.Contains(t, recs[0].Reason, "符合預算 ($200內)")
}

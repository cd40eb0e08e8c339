package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "https://www.ubereats.com", cfg.SiteOrigin)
	assert.Equal(t, 15, cfg.SearchLimit)
	assert.Equal(t, 20, cfg.MenuLimit)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, "auth_state.json", cfg.AuthStatePath)
	assert.Equal(t, 200, cfg.DefaultPrice)
	assert.Equal(t, DefaultWeights(), cfg.ScoreWeights)
	assert.NotEmpty(t, cfg.PriceTiers)
	assert.NotEmpty(t, cfg.TasteKeywords["spicy"])
	assert.NotEmpty(t, cfg.GenericStores)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{SearchLimit: 5, DefaultPrice: 300}
	cfg.ApplyDefaults()

	assert.Equal(t, 5, cfg.SearchLimit)
	assert.Equal(t, 300, cfg.DefaultPrice)
}

func TestYAMLRoundTrip(t *testing.T) {
	raw := `
site_origin: "https://www.ubereats.com"
search_limit: 8
score_weights:
  preference_match: 0.35
  price: 0.20
  eta: 0.20
  rating: 0.15
  popularity: 0.10
price_tiers:
  - keywords: ["麥當勞"]
    price: 150
taste_keywords:
  spicy: ["辣"]
`
	cfg := &Config{}
	require.NoError(t, yaml.Unmarshal([]byte(raw), cfg))

	assert.Equal(t, 8, cfg.SearchLimit)
	assert.InDelta(t, 0.35, cfg.ScoreWeights.PreferenceMatch, 1e-9)
	require.Len(t, cfg.PriceTiers, 1)
	assert.Equal(t, 150, cfg.PriceTiers[0].Price)
	assert.Equal(t, []string{"辣"}, cfg.TasteKeywords["spicy"])
}

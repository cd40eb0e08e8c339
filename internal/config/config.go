// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PriceTier maps store-name keywords to a representative price point.
// Tier order matters: the first matching tier wins.
type PriceTier struct {
	Keywords []string `yaml:"keywords"`
	Price    int      `yaml:"price"`
}

// Weights for the five scoring components. Must sum to 1.0.
type Weights struct {
	PreferenceMatch float64 `yaml:"preference_match"`
	Price           float64 `yaml:"price"`
	ETA             float64 `yaml:"eta"`
	Rating          float64 `yaml:"rating"`
	Popularity      float64 `yaml:"popularity"`
}

type Config struct {
	TelegramToken   string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramWebhook bool   `yaml:"telegram_webhook"`

	//Search behavior
	SiteOrigin  string `yaml:"site_origin"`
	SearchLimit int    `yaml:"search_limit"`
	MenuLimit   int    `yaml:"menu_limit"`
	TopN        int    `yaml:"top_n"`
	Headless    bool   `yaml:"headless"`

	//Paths
	AuthStatePath string `yaml:"auth_state_path"`

	//Scoring tables. The numeric boundaries were hand-tuned against the TW
	//marketplace, so they live here as replaceable data with fixed defaults.
	ScoreWeights  Weights             `yaml:"score_weights"`
	PriceTiers    []PriceTier         `yaml:"price_tiers"`
	DefaultPrice  int                 `yaml:"default_price"`
	TasteKeywords map[string][]string `yaml:"taste_keywords"`
	GenericStores []string            `yaml:"generic_stores"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if headless := os.Getenv("HEADLESS"); headless != "" {
		v, err := strconv.ParseBool(headless)
		if err != nil {
			log.Fatalf("Invalid HEADLESS: %v", err)
		}
		cfg.Headless = v
	}

	if authState := os.Getenv("AUTH_STATE_PATH"); authState != "" {
		cfg.AuthStatePath = authState
	}

	cfg.ApplyDefaults()

	//Validate required fields
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	return cfg
}

// ApplyDefaults fills every optional field that was not set. Also used by
// tests and cmd/agent, which build a Config without the YAML file.
func (cfg *Config) ApplyDefaults() {
	if cfg.SiteOrigin == "" {
		cfg.SiteOrigin = "https://www.ubereats.com"
	}
	if cfg.SearchLimit == 0 {
		cfg.SearchLimit = 15
	}
	if cfg.MenuLimit == 0 {
		cfg.MenuLimit = 20
	}
	if cfg.TopN == 0 {
		cfg.TopN = 3
	}
	if cfg.AuthStatePath == "" {
		cfg.AuthStatePath = "auth_state.json"
	}
	if cfg.ScoreWeights == (Weights{}) {
		cfg.ScoreWeights = DefaultWeights()
	}
	if len(cfg.PriceTiers) == 0 {
		cfg.PriceTiers = DefaultPriceTiers()
	}
	if cfg.DefaultPrice == 0 {
		cfg.DefaultPrice = 200
	}
	if len(cfg.TasteKeywords) == 0 {
		cfg.TasteKeywords = DefaultTasteKeywords()
	}
	if len(cfg.GenericStores) == 0 {
		cfg.GenericStores = DefaultGenericStores()
	}
}

func DefaultWeights() Weights {
	return Weights{
		PreferenceMatch: 0.35,
		Price:           0.20,
		ETA:             0.20,
		Rating:          0.15,
		Popularity:      0.10,
	}
}

func DefaultPriceTiers() []PriceTier {
	return []PriceTier{
		{Keywords: []string{"麥當勞", "肯德基", "頂呱呱"}, Price: 150},
		{Keywords: []string{"高級", "精緻", "buffet"}, Price: 500},
		{Keywords: []string{"便當", "小吃", "攤"}, Price: 100},
	}
}

func DefaultTasteKeywords() map[string][]string {
	return map[string][]string{
		"spicy": {"辣", "麻辣", "川", "湘", "韓", "泰", "椒"},
		"light": {"清", "養生", "健康", "蔬", "素"},
		"sweet": {"甜", "dessert", "糖", "蛋糕", "冰"},
	}
}

func DefaultGenericStores() []string {
	return []string{"便利商店", "全家", "7-11", "萊爾富", "超商"}
}

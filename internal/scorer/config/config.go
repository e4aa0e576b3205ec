package config

import (
	"golang-stock-scorer/pkg/config"
)

// Scorer holds scoring pipeline configuration.
type Scorer struct {
	ModelPath       string   `mapstructure:"model_path"`
	TrackedTickers  []string `mapstructure:"tracked_tickers"`
	RefreshInterval string   `mapstructure:"refresh_interval"`
	AlertThreshold  int      `mapstructure:"alert_threshold"`
	LatestCacheTTL  string   `mapstructure:"latest_cache_ttl"`
}

// YahooFinance holds the configuration for the Yahoo Finance API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	CacheTTL            string `mapstructure:"cache_ttl"`
}

// AlphaVantage holds the configuration for the Alpha Vantage API.
type AlphaVantage struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	CacheTTL            string `mapstructure:"cache_ttl"`
}

// News holds the configuration for headline retrieval.
type News struct {
	NewsAPIBaseURL      string `mapstructure:"newsapi_base_url"`
	NewsAPIKey          string `mapstructure:"newsapi_key"`
	RSSBaseURL          string `mapstructure:"rss_base_url"`
	MaxHeadlines        int    `mapstructure:"max_headlines"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	CacheTTL            string `mapstructure:"cache_ttl"`
}

// Gemini holds the configuration for the Gemini API used for entity extraction.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the scorer service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Scorer       Scorer          `mapstructure:"scorer"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	AlphaVantage AlphaVantage    `mapstructure:"alpha_vantage"`
	News         News            `mapstructure:"news"`
	Gemini       Gemini          `mapstructure:"gemini"`
	Telegram     Telegram        `mapstructure:"telegram"`
}

// Load loads the scorer configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

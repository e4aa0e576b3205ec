package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang-stock-scorer/internal/scorer/config"
	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// AlphaVantageRepository fetches company fundamentals from the Alpha Vantage
// OVERVIEW endpoint.
type AlphaVantageRepository interface {
	GetFundamentals(ctx context.Context, ticker string) (*dto.Fundamentals, error)
}

type alphaVantageOverviewResponse struct {
	Symbol               string `json:"Symbol"`
	MarketCapitalization string `json:"MarketCapitalization"`
	EPS                  string `json:"EPS"`
	BookValue            string `json:"BookValue"`
	Note                 string `json:"Note"`
}

type alphaVantageRepository struct {
	client  *http.Client
	cfg     *config.Config
	logger  *logger.Logger
	limiter *rate.Limiter
	cache   *gocache.Cache
}

// NewAlphaVantageRepository creates a new instance of AlphaVantageRepository.
func NewAlphaVantageRepository(cfg *config.Config, log *logger.Logger) (AlphaVantageRepository, error) {
	maxPerMinute := cfg.AlphaVantage.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 5
	}
	ttl, err := time.ParseDuration(cfg.AlphaVantage.CacheTTL)
	if err != nil || ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &alphaVantageRepository{
		client:  &http.Client{Timeout: 10 * time.Second},
		cfg:     cfg,
		logger:  log,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1),
		cache:   gocache.New(ttl, 2*ttl),
	}, nil
}

func (r *alphaVantageRepository) GetFundamentals(ctx context.Context, ticker string) (*dto.Fundamentals, error) {
	if r.cfg.AlphaVantage.APIKey == "" {
		return nil, fmt.Errorf("missing alpha vantage api key")
	}

	if cached, found := r.cache.Get(ticker); found {
		fundamentals := cached.(dto.Fundamentals)
		return &fundamentals, nil
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	url := fmt.Sprintf("%s/query?function=OVERVIEW&symbol=%s&apikey=%s",
		r.cfg.AlphaVantage.BaseURL, ticker, r.cfg.AlphaVantage.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call alpha vantage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alpha vantage returned status %d", resp.StatusCode)
	}

	var overview alphaVantageOverviewResponse
	if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
		return nil, fmt.Errorf("failed to decode alpha vantage response: %w", err)
	}

	// Rate-limit notes come back as 200s with a Note field instead of data.
	if overview.Symbol == "" {
		if overview.Note != "" {
			return nil, fmt.Errorf("alpha vantage: %s", overview.Note)
		}
		return nil, fmt.Errorf("alpha vantage returned no data for %s", ticker)
	}

	fundamentals := dto.Fundamentals{
		MarketCap: parseFloatOrZero(overview.MarketCapitalization),
		EPS:       parseFloatOrZero(overview.EPS),
		BookValue: parseFloatOrZero(overview.BookValue),
	}

	r.cache.Set(ticker, fundamentals, gocache.DefaultExpiration)
	return &fundamentals, nil
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang-stock-scorer/internal/scorer/config"
	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// YahooFinanceRepository fetches price-derived fields for a ticker.
type YahooFinanceRepository interface {
	GetQuote(ctx context.Context, ticker string) (*dto.StockQuote, error)
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				ForwardPE struct {
					Raw float64 `json:"raw"`
				} `json:"forwardPE"`
			} `json:"summaryDetail"`
			FinancialData struct {
				DebtToEquity struct {
					Raw float64 `json:"raw"`
				} `json:"debtToEquity"`
			} `json:"financialData"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

type yahooFinanceRepository struct {
	client  *http.Client
	cfg     *config.Config
	logger  *logger.Logger
	limiter *rate.Limiter
	cache   *gocache.Cache
}

// NewYahooFinanceRepository creates a new instance of YahooFinanceRepository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) (YahooFinanceRepository, error) {
	maxPerMinute := cfg.YahooFinance.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 60
	}
	ttl, err := time.ParseDuration(cfg.YahooFinance.CacheTTL)
	if err != nil || ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &yahooFinanceRepository{
		client:  &http.Client{Timeout: 10 * time.Second},
		cfg:     cfg,
		logger:  log,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1),
		cache:   gocache.New(ttl, 2*ttl),
	}, nil
}

func (r *yahooFinanceRepository) GetQuote(ctx context.Context, ticker string) (*dto.StockQuote, error) {
	if cached, found := r.cache.Get(ticker); found {
		quote := cached.(dto.StockQuote)
		return &quote, nil
	}

	closes, err := r.fetchCloses(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if len(closes) < 2 {
		return nil, fmt.Errorf("not enough price history for %s", ticker)
	}

	closePrice := closes[len(closes)-1]
	prevClose := closes[len(closes)-2]
	change1D := 0.0
	if prevClose != 0 {
		change1D = (closePrice - prevClose) / prevClose * 100.0
	}

	quote := dto.StockQuote{
		ClosePrice: closePrice,
		Change1D:   change1D,
	}

	// Ratios ride on a separate endpoint. A failure there still yields a
	// usable quote; the fields fall back to zero.
	peRatio, debtToEquity, err := r.fetchRatios(ctx, ticker)
	if err != nil {
		r.logger.Warn("Failed to fetch yahoo ratios", logger.StringField("ticker", ticker), logger.ErrorField(err))
	} else {
		quote.PERatio = peRatio
		quote.DebtToEquity = debtToEquity
	}

	r.cache.Set(ticker, quote, gocache.DefaultExpiration)
	return &quote, nil
}

func (r *yahooFinanceRepository) fetchCloses(ctx context.Context, ticker string) ([]float64, error) {
	var chartResp yahooChartResponse
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=5d&interval=1d", r.cfg.YahooFinance.BaseURL, ticker)
	if err := r.getJSON(ctx, url, &chartResp); err != nil {
		return nil, err
	}
	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error: %s", chartResp.Chart.Error.Description)
	}
	if len(chartResp.Chart.Result) == 0 || len(chartResp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart returned no data for %s", ticker)
	}

	var closes []float64
	for _, c := range chartResp.Chart.Result[0].Indicators.Quote[0].Close {
		if c != nil {
			closes = append(closes, *c)
		}
	}
	return closes, nil
}

func (r *yahooFinanceRepository) fetchRatios(ctx context.Context, ticker string) (peRatio, debtToEquity float64, err error) {
	var summaryResp yahooQuoteSummaryResponse
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryDetail,financialData", r.cfg.YahooFinance.BaseURL, ticker)
	if err := r.getJSON(ctx, url, &summaryResp); err != nil {
		return 0, 0, err
	}
	if len(summaryResp.QuoteSummary.Result) == 0 {
		return 0, 0, fmt.Errorf("yahoo quote summary returned no data for %s", ticker)
	}
	result := summaryResp.QuoteSummary.Result[0]
	return result.SummaryDetail.ForwardPE.Raw, result.FinancialData.DebtToEquity.Raw, nil
}

func (r *yahooFinanceRepository) getJSON(ctx context.Context, url string, out interface{}) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "golang-stock-scorer/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call yahoo finance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo finance returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode yahoo response: %w", err)
	}
	return nil
}

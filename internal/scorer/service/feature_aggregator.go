package service

import (
	"context"

	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/internal/scorer/repository"
	"golang-stock-scorer/pkg/common"
	"golang-stock-scorer/pkg/logger"
	"golang-stock-scorer/pkg/utils"
)

const maxHeadlines = 10

// FeatureAggregator merges the three raw data sources into one canonical
// feature vector.
type FeatureAggregator interface {
	Build(ctx context.Context, ticker string) dto.FeatureVector
}

// NewFeatureAggregator creates a new FeatureAggregator.
func NewFeatureAggregator(
	yahooRepo repository.YahooFinanceRepository,
	alphaRepo repository.AlphaVantageRepository,
	newsRepo repository.NewsRepository,
	log *logger.Logger,
) FeatureAggregator {
	return &featureAggregator{
		yahooRepo: yahooRepo,
		alphaRepo: alphaRepo,
		newsRepo:  newsRepo,
		logger:    log,
	}
}

type featureAggregator struct {
	yahooRepo repository.YahooFinanceRepository
	alphaRepo repository.AlphaVantageRepository
	newsRepo  repository.NewsRepository
	logger    *logger.Logger
}

// Build never fails: each source error is recorded under its source name and
// the affected fields keep their 0.0 defaults.
func (a *featureAggregator) Build(ctx context.Context, ticker string) dto.FeatureVector {
	fv := dto.FeatureVector{
		Ticker:    ticker,
		Headlines: []string{},
		Errors:    map[string]string{},
		Timestamp: utils.TimeNowUTC(),
	}

	quote, err := a.yahooRepo.GetQuote(ctx, ticker)
	if err != nil {
		a.logger.Warn("Failed to fetch yahoo data", logger.StringField("ticker", ticker), logger.ErrorField(err))
		fv.Errors[common.SourceYahoo] = err.Error()
	} else {
		fv.Change1D = utils.SafeFloat(quote.Change1D)
		fv.PERatio = utils.SafeFloat(quote.PERatio)
		fv.DebtToEquity = utils.SafeFloat(quote.DebtToEquity)
	}

	fundamentals, err := a.alphaRepo.GetFundamentals(ctx, ticker)
	if err != nil {
		a.logger.Warn("Failed to fetch alpha vantage data", logger.StringField("ticker", ticker), logger.ErrorField(err))
		fv.Errors[common.SourceAlpha] = err.Error()
	} else {
		fv.MarketCap = utils.SafeFloat(fundamentals.MarketCap)
		fv.EPS = utils.SafeFloat(fundamentals.EPS)
		fv.BookValue = utils.SafeFloat(fundamentals.BookValue)
	}

	news, err := a.newsRepo.GetNewsSentiment(ctx, ticker)
	if err != nil {
		a.logger.Warn("Failed to fetch news data", logger.StringField("ticker", ticker), logger.ErrorField(err))
		fv.Errors[common.SourceNews] = err.Error()
	} else {
		fv.NewsSentiment = utils.SafeFloat(news.Sentiment)
		if len(news.Headlines) > maxHeadlines {
			fv.Headlines = news.Headlines[:maxHeadlines]
		} else if news.Headlines != nil {
			fv.Headlines = news.Headlines
		}
	}

	return fv
}

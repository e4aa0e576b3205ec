package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-stock-scorer/internal/scorer/config"
	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/pkg/logger"
	"golang-stock-scorer/pkg/sentiment"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// NewsRepository fetches recent headlines for a ticker and computes their
// average sentiment polarity.
type NewsRepository interface {
	GetNewsSentiment(ctx context.Context, ticker string) (*dto.NewsSentimentResult, error)
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

type newsRepository struct {
	client     *http.Client
	cfg        *config.Config
	logger     *logger.Logger
	limiter    *rate.Limiter
	cache      *gocache.Cache
	feedParser *gofeed.Parser
	analyzer   sentiment.Analyzer
}

// NewNewsRepository creates a new instance of NewsRepository.
func NewNewsRepository(cfg *config.Config, log *logger.Logger, analyzer sentiment.Analyzer) (NewsRepository, error) {
	maxPerMinute := cfg.News.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 30
	}
	ttl, err := time.ParseDuration(cfg.News.CacheTTL)
	if err != nil || ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &newsRepository{
		client:     &http.Client{Timeout: 10 * time.Second},
		cfg:        cfg,
		logger:     log,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1),
		cache:      gocache.New(ttl, 2*ttl),
		feedParser: gofeed.NewParser(),
		analyzer:   analyzer,
	}, nil
}

func (r *newsRepository) GetNewsSentiment(ctx context.Context, ticker string) (*dto.NewsSentimentResult, error) {
	if cached, found := r.cache.Get(ticker); found {
		result := cached.(dto.NewsSentimentResult)
		return &result, nil
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	var (
		headlines []string
		err       error
	)
	if r.cfg.News.NewsAPIKey != "" {
		headlines, err = r.fetchNewsAPI(ctx, ticker)
	} else {
		headlines, err = r.fetchRSS(ctx, ticker)
	}
	if err != nil {
		return nil, err
	}

	maxHeadlines := r.cfg.News.MaxHeadlines
	if maxHeadlines <= 0 {
		maxHeadlines = 10
	}
	if len(headlines) > maxHeadlines {
		headlines = headlines[:maxHeadlines]
	}

	avg := 0.0
	if len(headlines) > 0 {
		sum := 0.0
		for _, h := range headlines {
			sum += r.analyzer.Polarity(h)
		}
		avg = math.Round(sum/float64(len(headlines))*100) / 100
	}

	result := dto.NewsSentimentResult{Headlines: headlines, Sentiment: avg}
	r.cache.Set(ticker, result, gocache.DefaultExpiration)
	return &result, nil
}

func (r *newsRepository) fetchNewsAPI(ctx context.Context, ticker string) ([]string, error) {
	apiURL := fmt.Sprintf("%s/v2/everything?q=%s&language=en&sortBy=publishedAt&pageSize=10&apiKey=%s",
		r.cfg.News.NewsAPIBaseURL, url.QueryEscape(ticker), r.cfg.News.NewsAPIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call newsapi: %w", err)
	}
	defer resp.Body.Close()

	var data newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode newsapi response: %w", err)
	}
	if data.Status != "ok" {
		return nil, fmt.Errorf("newsapi returned no articles: %s", data.Message)
	}

	var headlines []string
	for _, a := range data.Articles {
		if title := strings.TrimSpace(a.Title); title != "" {
			headlines = append(headlines, title)
		}
	}
	return headlines, nil
}

// fetchRSS pulls Google News RSS results for the ticker when no NewsAPI key
// is configured.
func (r *newsRepository) fetchRSS(ctx context.Context, ticker string) ([]string, error) {
	feedURL := fmt.Sprintf("%s/rss/search?q=%s+stock&hl=en-US&gl=US&ceid=US:en",
		r.cfg.News.RSSBaseURL, url.QueryEscape(ticker))

	feed, err := r.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	var headlines []string
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" && item.Description != "" {
			title = stripHTML(item.Description)
		}
		if title == "" && item.Link != "" {
			// Some aggregator entries carry nothing but a link.
			title = r.extractTitleFromArticle(ctx, item.Link)
		}
		if title != "" {
			headlines = append(headlines, title)
		}
	}
	return headlines, nil
}

func (r *newsRepository) extractTitleFromArticle(ctx context.Context, link string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return ""
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return ""
	}
	text := stripHTML(doc.Content())
	if line, _, found := strings.Cut(text, "\n"); found {
		text = line
	}
	const maxTitleLen = 140
	if len(text) > maxTitleLen {
		text = text[:maxTitleLen]
	}
	return strings.TrimSpace(text)
}

func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

package dto

// StockQuote holds the price-derived fields fetched from Yahoo Finance.
type StockQuote struct {
	ClosePrice   float64 `json:"close_price"`
	Change1D     float64 `json:"change_1d"`
	PERatio      float64 `json:"pe_ratio"`
	DebtToEquity float64 `json:"debt_to_equity"`
}

// Fundamentals holds the company fundamentals fetched from Alpha Vantage.
type Fundamentals struct {
	MarketCap float64 `json:"market_cap"`
	EPS       float64 `json:"eps"`
	BookValue float64 `json:"book_value"`
}

// NewsSentimentResult holds recent headlines and their average polarity.
type NewsSentimentResult struct {
	Headlines []string `json:"headlines"`
	Sentiment float64  `json:"sentiment"`
}

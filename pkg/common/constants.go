package common

const (
	RedisKeyLatestScorePrefix = "scorer:latest:"

	SourceYahoo = "yahoo"
	SourceAlpha = "alpha"
	SourceNews  = "news"
)

// FeatureNames is the fixed feature order shared by the rule scorer, the ML
// scorer and the trainer. Changing it invalidates any persisted model artifact.
var FeatureNames = []string{
	"change_1d",
	"debt_to_equity",
	"pe_ratio",
	"market_cap",
	"eps",
	"book_value",
	"news_sentiment",
}

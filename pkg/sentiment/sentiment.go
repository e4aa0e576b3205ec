package sentiment

import (
	"github.com/jonreiter/govader"
)

// Analyzer scores the polarity of a piece of text in [-1, 1].
type Analyzer interface {
	Polarity(text string) float64
}

type vaderAnalyzer struct {
	engine *govader.SentimentIntensityAnalyzer
}

// NewVaderAnalyzer returns an Analyzer backed by the VADER lexicon. The
// compound score maps directly onto the [-1, 1] polarity range the
// classification thresholds expect.
func NewVaderAnalyzer() Analyzer {
	return &vaderAnalyzer{engine: govader.NewSentimentIntensityAnalyzer()}
}

func (a *vaderAnalyzer) Polarity(text string) float64 {
	return a.engine.PolarityScores(text).Compound
}

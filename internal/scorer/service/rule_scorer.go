package service

import (
	"fmt"

	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/pkg/utils"
)

const ruleBaseScore = 70

// adjustment is one applied rule: a signed score delta plus its explanation line.
type adjustment struct {
	delta int
	line  string
}

// scoringRule evaluates one heuristic against the feature vector. A nil
// result means the rule contributes neither points nor an explanation line.
type scoringRule func(fv dto.FeatureVector) *adjustment

// RuleScorer computes the deterministic additive score.
type RuleScorer interface {
	Score(fv dto.FeatureVector) (int, []string)
}

// NewRuleScorer creates a RuleScorer with the fixed rule set.
func NewRuleScorer() RuleScorer {
	return &ruleScorer{rules: defaultRules()}
}

type ruleScorer struct {
	rules []scoringRule
}

// Score folds the ordered rules over the baseline. The numeric result is
// order-independent; the explanation line order is part of the contract.
func (s *ruleScorer) Score(fv dto.FeatureVector) (int, []string) {
	score := ruleBaseScore
	explanation := make([]string, 0, len(s.rules))

	for _, rule := range s.rules {
		if adj := rule(fv); adj != nil {
			score += adj.delta
			explanation = append(explanation, adj.line)
		}
	}

	return utils.ClampInt(score, 0, 100), explanation
}

func defaultRules() []scoringRule {
	return []scoringRule{
		func(fv dto.FeatureVector) *adjustment {
			switch {
			case fv.Change1D < -2:
				return &adjustment{-20, fmt.Sprintf("Stock fell %.2f%% -> -20 points", fv.Change1D)}
			case fv.Change1D > 2:
				return &adjustment{10, fmt.Sprintf("Stock rose %.2f%% -> +10 points", fv.Change1D)}
			default:
				return &adjustment{0, fmt.Sprintf("Stock change %.2f%% -> no major effect", fv.Change1D)}
			}
		},
		func(fv dto.FeatureVector) *adjustment {
			if fv.DebtToEquity > 200 {
				return &adjustment{-15, fmt.Sprintf("High debt ratio %.2f -> -15 points", fv.DebtToEquity)}
			}
			return &adjustment{0, fmt.Sprintf("Debt ratio %.2f is stable -> no penalty", fv.DebtToEquity)}
		},
		func(fv dto.FeatureVector) *adjustment {
			switch {
			case fv.PERatio > 30:
				return &adjustment{-5, fmt.Sprintf("High P/E ratio %.2f -> -5 points", fv.PERatio)}
			case fv.PERatio > 0:
				return &adjustment{5, fmt.Sprintf("P/E ratio %.2f is reasonable -> +5 points", fv.PERatio)}
			default:
				return nil
			}
		},
		func(fv dto.FeatureVector) *adjustment {
			switch {
			case fv.MarketCap > 1e11:
				return &adjustment{5, "Large market cap company -> +5 points"}
			case fv.MarketCap > 0:
				return &adjustment{-5, "Smaller market cap company -> -5 points"}
			default:
				return nil
			}
		},
		func(fv dto.FeatureVector) *adjustment {
			if fv.EPS > 0 {
				return &adjustment{5, fmt.Sprintf("Profitable with EPS %g -> +5 points", fv.EPS)}
			}
			return &adjustment{-5, "No EPS data or negative -> -5 points"}
		},
		func(fv dto.FeatureVector) *adjustment {
			if fv.BookValue > 0 {
				return &adjustment{3, fmt.Sprintf("Positive book value %g -> +3 points", fv.BookValue)}
			}
			return nil
		},
		func(fv dto.FeatureVector) *adjustment {
			// int() truncates toward zero, matching the original effect.
			delta := int(fv.NewsSentiment * 20)
			return &adjustment{delta, fmt.Sprintf("News sentiment %.2f -> %+d points", fv.NewsSentiment, delta)}
		},
	}
}

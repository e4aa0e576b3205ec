package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-stock-scorer/internal/entity"
	"golang-stock-scorer/internal/scorer/config"
	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/internal/scorer/repository"
	"golang-stock-scorer/pkg/common"
	"golang-stock-scorer/pkg/logger"
	"golang-stock-scorer/pkg/redis"
)

// ScoringService runs the full scoring pipeline for a ticker and persists the
// outcome.
type ScoringService interface {
	Score(ctx context.Context, ticker string) (dto.ScoreResult, error)
	LatestScores(ctx context.Context) (map[string]dto.ScoreResult, error)
}

// NewScoringService creates a new ScoringService. redisClient may be nil, in
// which case the latest-score cache is disabled.
func NewScoringService(
	cfg *config.Config,
	log *logger.Logger,
	aggregator FeatureAggregator,
	ruleScorer RuleScorer,
	eventDetector EventDetector,
	mlScorer MLScorer,
	blender ScoreBlender,
	scoreStore repository.ScoreStore,
	redisClient *redis.Client,
) ScoringService {
	return &scoringService{
		cfg:           cfg,
		logger:        log,
		aggregator:    aggregator,
		ruleScorer:    ruleScorer,
		eventDetector: eventDetector,
		mlScorer:      mlScorer,
		blender:       blender,
		scoreStore:    scoreStore,
		redisClient:   redisClient,
	}
}

type scoringService struct {
	cfg           *config.Config
	logger        *logger.Logger
	aggregator    FeatureAggregator
	ruleScorer    RuleScorer
	eventDetector EventDetector
	mlScorer      MLScorer
	blender       ScoreBlender
	scoreStore    repository.ScoreStore
	redisClient   *redis.Client
}

func (s *scoringService) Score(ctx context.Context, ticker string) (dto.ScoreResult, error) {
	fv := s.aggregator.Build(ctx, ticker)

	ruleScore, explanation := s.ruleScorer.Score(fv)
	s.logger.Debug("Rule-based score computed",
		logger.StringField("ticker", ticker),
		logger.IntField("rule_score", ruleScore),
	)
	for _, line := range explanation {
		s.logger.Debug("Rule explanation", logger.StringField("ticker", ticker), logger.StringField("line", line))
	}

	events := s.eventDetector.Classify(ctx, fv.Headlines)

	var mlScore *float64
	importance := map[string]float64{}
	if s.mlScorer.Available() {
		score, attribution, err := s.mlScorer.Predict(fv)
		if err != nil {
			// Degrade to rule-only output rather than failing the request.
			s.logger.Error("ML prediction failed", logger.StringField("ticker", ticker), logger.ErrorField(err))
		} else {
			mlScore = &score
			importance = attribution
		}
	}

	finalScore := s.blender.Blend(ruleScore, mlScore, events)

	result := dto.ScoreResult{
		Ticker:              ticker,
		RuleScore:           ruleScore,
		MLScore:             mlScore,
		FinalScore:          finalScore,
		Explanation:         explanation,
		MLFeatureImportance: importance,
		Events:              events,
		Features:            fv,
		Timestamp:           fv.Timestamp,
	}

	if err := s.persist(ctx, result); err != nil {
		return dto.ScoreResult{}, fmt.Errorf("failed to persist score for %s: %w", ticker, err)
	}
	s.cacheLatest(ctx, result)

	s.logger.Info("Ticker scored",
		logger.StringField("ticker", ticker),
		logger.IntField("rule_score", ruleScore),
		logger.Field("ml_score", mlScore),
		logger.IntField("final_score", finalScore),
		logger.IntField("events", len(events)),
	)
	return result, nil
}

func (s *scoringService) persist(ctx context.Context, result dto.ScoreResult) error {
	// Snapshots feed training, where NULLs would poison the frame, so a
	// missing ML score is stored as 0.
	mlValue := 0.0
	if result.MLScore != nil {
		mlValue = *result.MLScore
	}
	snapshot := entity.Snapshot{
		Ts:            result.Timestamp,
		Ticker:        result.Ticker,
		Change1D:      result.Features.Change1D,
		DebtToEquity:  result.Features.DebtToEquity,
		PERatio:       result.Features.PERatio,
		MarketCap:     result.Features.MarketCap,
		EPS:           result.Features.EPS,
		BookValue:     result.Features.BookValue,
		NewsSentiment: result.Features.NewsSentiment,
		RuleScore:     float64(result.RuleScore),
		MLScore:       mlValue,
		FinalScore:    float64(result.FinalScore),
	}
	featuresJSON, err := json.Marshal(result.Features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}
	eventsJSON, err := json.Marshal(result.Events)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}
	record := entity.ScoreRecord{
		Ticker:      result.Ticker,
		RuleScore:   result.RuleScore,
		MLScore:     result.MLScore,
		FinalScore:  result.FinalScore,
		Features:    featuresJSON,
		Explanation: result.Explanation,
		Events:      eventsJSON,
		Timestamp:   result.Timestamp,
	}
	// Both rows commit or neither does.
	return s.scoreStore.Persist(ctx, &snapshot, &record)
}

func (s *scoringService) cacheLatest(ctx context.Context, result dto.ScoreResult) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("Failed to marshal score result for cache", logger.ErrorField(err))
		return
	}
	ttl, err := time.ParseDuration(s.cfg.Scorer.LatestCacheTTL)
	if err != nil || ttl <= 0 {
		ttl = time.Hour
	}
	key := common.RedisKeyLatestScorePrefix + result.Ticker
	if err := s.redisClient.Set(ctx, key, payload, ttl).Err(); err != nil {
		s.logger.Error("Failed to cache latest score", logger.StringField("ticker", result.Ticker), logger.ErrorField(err))
	}
}

// LatestScores returns the most recent cached result for each tracked ticker.
func (s *scoringService) LatestScores(ctx context.Context) (map[string]dto.ScoreResult, error) {
	latest := make(map[string]dto.ScoreResult)
	if s.redisClient == nil {
		return latest, nil
	}

	for _, ticker := range s.cfg.Scorer.TrackedTickers {
		payload, err := s.redisClient.Get(ctx, common.RedisKeyLatestScorePrefix+ticker).Bytes()
		if err != nil {
			continue
		}
		var result dto.ScoreResult
		if err := json.Unmarshal(payload, &result); err != nil {
			s.logger.Error("Failed to unmarshal cached score", logger.StringField("ticker", ticker), logger.ErrorField(err))
			continue
		}
		latest[ticker] = result
	}
	return latest, nil
}

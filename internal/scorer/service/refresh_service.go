package service

import (
	"context"
	"fmt"

	"golang-stock-scorer/internal/scorer/config"
	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/pkg/logger"
	"golang-stock-scorer/pkg/telegram"

	"github.com/robfig/cron/v3"
)

// RefreshService periodically re-scores the tracked tickers so history and
// training data keep accumulating without interactive requests.
type RefreshService interface {
	Start(ctx context.Context) error
	Stop()
	RefreshAll(ctx context.Context)
}

// NewRefreshService creates a new RefreshService. notifier may be nil, in
// which case no alerts are sent.
func NewRefreshService(cfg *config.Config, log *logger.Logger, scoringSvc ScoringService, notifier telegram.Notifier) RefreshService {
	return &refreshService{
		cfg:        cfg,
		logger:     log,
		scoringSvc: scoringSvc,
		notifier:   notifier,
		cron:       cron.New(),
	}
}

type refreshService struct {
	cfg        *config.Config
	logger     *logger.Logger
	scoringSvc ScoringService
	notifier   telegram.Notifier
	cron       *cron.Cron
}

func (s *refreshService) Start(ctx context.Context) error {
	interval := s.cfg.Scorer.RefreshInterval
	if interval == "" {
		interval = "10m"
	}

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		s.RefreshAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Refresh scheduler started",
		logger.StringField("interval", interval),
		logger.IntField("tickers", len(s.cfg.Scorer.TrackedTickers)),
	)
	return nil
}

func (s *refreshService) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Refresh scheduler stopped")
}

// RefreshAll scores every tracked ticker. A failure for one ticker never
// blocks the others.
func (s *refreshService) RefreshAll(ctx context.Context) {
	for _, ticker := range s.cfg.Scorer.TrackedTickers {
		result, err := s.scoringSvc.Score(ctx, ticker)
		if err != nil {
			s.logger.Error("Failed to refresh ticker", logger.StringField("ticker", ticker), logger.ErrorField(err))
			continue
		}

		if s.notifier != nil && s.cfg.Scorer.AlertThreshold > 0 && result.FinalScore < s.cfg.Scorer.AlertThreshold {
			headlines := make([]string, 0, len(result.Events))
			for _, ev := range result.Events {
				if ev.Impact != dto.ImpactNeutral {
					headlines = append(headlines, fmt.Sprintf("%s: %s", ev.Impact, ev.Headline))
				}
			}
			if err := s.notifier.SendScoreAlert(ticker, result.FinalScore, result.RuleScore, headlines); err != nil {
				s.logger.Error("Failed to send score alert", logger.StringField("ticker", ticker), logger.ErrorField(err))
			}
		}
	}
}

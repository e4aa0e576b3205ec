package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-scorer/internal/scorer/config"
	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// EntityRepository extracts named entities from a headline. Entity extraction
// is an optional capability: the event detector tolerates a nil repository and
// any per-headline failure.
type EntityRepository interface {
	Extract(ctx context.Context, headline string) ([]dto.Entity, error)
}

const entityPrompt = `Extract the named entities from this financial news headline.
Respond with a JSON array only, no prose, where each element is
{"text": "<entity text>", "label": "<ORG|PERSON|GPE|PRODUCT|MONEY|DATE|OTHER>"}.

Headline: %s`

type geminiEntityRepository struct {
	cfg         *config.Config
	logger      *logger.Logger
	limiter     *rate.Limiter
	genAiClient *genai.Client
}

// NewGeminiEntityRepository creates an EntityRepository backed by the Google
// Gemini API.
func NewGeminiEntityRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (EntityRepository, error) {
	maxPerMinute := cfg.Gemini.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 15
	}
	return &geminiEntityRepository{
		cfg:         cfg,
		logger:      log,
		limiter:     rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1),
		genAiClient: genAiClient,
	}, nil
}

func (r *geminiEntityRepository) Extract(ctx context.Context, headline string) ([]dto.Entity, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	prompt := fmt.Sprintf(entityPrompt, headline)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call gemini api: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("invalid response from Gemini API: no content found")
	}

	jsonString := resp.Candidates[0].Content.Parts[0].Text
	jsonString = strings.Trim(jsonString, "`json\n`")

	var entities []dto.Entity
	if err := json.Unmarshal([]byte(jsonString), &entities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entities from Gemini response: %w", err)
	}
	return entities, nil
}

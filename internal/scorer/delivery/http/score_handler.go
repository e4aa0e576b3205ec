package http

import (
	"net/http"
	"strconv"
	"strings"

	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/internal/scorer/service"
	"golang-stock-scorer/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultHistoryLimit = 10

// ScoreHandler handles HTTP requests for scoring and score history.
type ScoreHandler struct {
	scoringService service.ScoringService
	trendService   service.TrendService
	historyService service.HistoryService
	logger         *logger.Logger
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(scoringService service.ScoringService, trendService service.TrendService, historyService service.HistoryService, logger *logger.Logger) *ScoreHandler {
	return &ScoreHandler{
		scoringService: scoringService,
		trendService:   trendService,
		historyService: historyService,
		logger:         logger,
	}
}

// RegisterRoutes registers the score routes to the Echo group.
func (h *ScoreHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/scores", h.ScoreTickers)
	g.GET("/scores/latest", h.GetLatest)
	g.GET("/scores/:ticker/history", h.GetHistory)
	g.GET("/scores/:ticker/trend", h.GetTrend)
}

// ScoreTickers godoc
// @Summary Score one or more tickers
// @Description Runs the scoring pipeline for each requested ticker and persists the results
// @Tags scores
// @Accept  json
// @Produce  json
// @Param   request  body    dto.ScoreRequest   true    "Tickers to score"
// @Success 200 {object} map[string][]dto.ScoreResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /scores [post]
func (h *ScoreHandler) ScoreTickers(c echo.Context) error {
	var req dto.ScoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	tickers := req.Tickers
	if len(tickers) == 0 && req.Ticker != "" {
		tickers = []string{req.Ticker}
	}
	if len(tickers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Please provide at least one ticker symbol"})
	}

	results := make([]dto.ScoreResult, 0, len(tickers))
	for _, ticker := range tickers {
		result, err := h.scoringService.Score(c.Request().Context(), strings.ToUpper(strings.TrimSpace(ticker)))
		if err != nil {
			h.logger.Error("Failed to score ticker", logger.StringField("ticker", ticker), logger.ErrorField(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		results = append(results, result)
	}

	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

// GetLatest godoc
// @Summary Latest scores for tracked tickers
// @Produce  json
// @Tags scores
// @Success 200 {object} map[string]dto.ScoreResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /scores/latest [get]
func (h *ScoreHandler) GetLatest(c echo.Context) error {
	latest, err := h.scoringService.LatestScores(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get latest scores", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get latest scores"})
	}
	return c.JSON(http.StatusOK, latest)
}

// GetHistory godoc
// @Summary Persisted score history for a ticker
// @Produce  json
// @Tags scores
// @Param   ticker  path   string true  "Ticker symbol"
// @Param   limit   query  int    false "Maximum rows (default 10)"
// @Success 200 {array} entity.ScoreRecord
// @Failure 500 {object} dto.ErrorResponse
// @Router /scores/{ticker}/history [get]
func (h *ScoreHandler) GetHistory(c echo.Context) error {
	ticker := strings.ToUpper(c.Param("ticker"))
	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.historyService.History(c.Request().Context(), ticker, limit)
	if err != nil {
		h.logger.Error("Failed to get score history", logger.StringField("ticker", ticker), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get score history"})
	}
	return c.JSON(http.StatusOK, records)
}

// GetTrend godoc
// @Summary Score trend for a ticker
// @Produce  json
// @Tags scores
// @Param   ticker  path   string true  "Ticker symbol"
// @Param   window  query  int    false "Window size (default 7)"
// @Success 200 {object} dto.TrendResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /scores/{ticker}/trend [get]
func (h *ScoreHandler) GetTrend(c echo.Context) error {
	ticker := strings.ToUpper(c.Param("ticker"))
	window := service.DefaultTrendWindow
	if raw := c.QueryParam("window"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			window = parsed
		}
	}

	trend, err := h.trendService.Trend(c.Request().Context(), ticker, window)
	if err != nil {
		h.logger.Error("Failed to get score trend", logger.StringField("ticker", ticker), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get score trend"})
	}
	return c.JSON(http.StatusOK, trend)
}

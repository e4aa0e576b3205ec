package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"golang-stock-scorer/internal/entity"
	"golang-stock-scorer/internal/scorer/config"
	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/internal/scorer/repository"
	"golang-stock-scorer/pkg/common"
	"golang-stock-scorer/pkg/logger"
	"golang-stock-scorer/pkg/mlmodel"
	"golang-stock-scorer/pkg/utils"

	"gonum.org/v1/gonum/mat"
)

// ErrInsufficientData is returned when the snapshot table holds fewer rows
// than the training minimum.
var ErrInsufficientData = errors.New("not enough snapshot rows to train model")

const (
	minTrainingRows = 20
	testFraction    = 0.2
	trainingSeed    = 42
)

// TrainerService fits a regression model from persisted snapshots.
type TrainerService interface {
	Train(ctx context.Context) (*mlmodel.Model, dto.TrainingReport, error)
}

// NewTrainerService creates a new TrainerService.
func NewTrainerService(cfg *config.Config, log *logger.Logger, snapshotRepo repository.SnapshotRepository) TrainerService {
	return &trainerService{cfg: cfg, logger: log, snapshotRepo: snapshotRepo}
}

type trainerService struct {
	cfg          *config.Config
	logger       *logger.Logger
	snapshotRepo repository.SnapshotRepository
}

// Train loads every snapshot, splits 80/20 with a fixed seed, fits ordinary
// least squares against the rule score and writes the artifact. The label is
// deliberately the rule score, not an external outcome: the model learns to
// approximate the rule engine.
func (s *trainerService) Train(ctx context.Context) (*mlmodel.Model, dto.TrainingReport, error) {
	snapshots, err := s.snapshotRepo.FindAll(ctx)
	if err != nil {
		return nil, dto.TrainingReport{}, fmt.Errorf("failed to load snapshots: %w", err)
	}

	n := len(snapshots)
	if n < minTrainingRows {
		return nil, dto.TrainingReport{}, fmt.Errorf("%w: have %d, need at least %d", ErrInsufficientData, n, minTrainingRows)
	}

	// Fixed seed so repeated runs over the same table produce the same split.
	rng := rand.New(rand.NewSource(trainingSeed))
	perm := rng.Perm(n)

	testRows := int(math.Ceil(float64(n) * testFraction))
	trainRows := n - testRows

	train := make([]entity.Snapshot, 0, trainRows)
	test := make([]entity.Snapshot, 0, testRows)
	for i, idx := range perm {
		if i < trainRows {
			train = append(train, snapshots[idx])
		} else {
			test = append(test, snapshots[idx])
		}
	}

	weights, intercept, err := fitOLS(train)
	if err != nil {
		return nil, dto.TrainingReport{}, fmt.Errorf("failed to fit regression: %w", err)
	}

	model := &mlmodel.Model{
		FeatureNames: common.FeatureNames,
		Weights:      weights,
		Intercept:    intercept,
		FeatureMeans: featureMeans(train),
		TrainedAt:    utils.TimeNowUTC().Format("2006-01-02T15:04:05Z"),
	}

	r2, rmse := evaluate(model, test)
	report := dto.TrainingReport{
		Rows:      n,
		TrainRows: trainRows,
		TestRows:  testRows,
		R2:        r2,
		RMSE:      rmse,
	}

	s.logger.Info("Model trained",
		logger.IntField("rows", n),
		logger.Float64Field("r2", r2),
		logger.Float64Field("rmse", rmse),
	)

	if err := model.Save(s.cfg.Scorer.ModelPath); err != nil {
		return nil, report, fmt.Errorf("failed to save model artifact: %w", err)
	}
	return model, report, nil
}

func snapshotVector(s entity.Snapshot) []float64 {
	return []float64{
		s.Change1D,
		s.DebtToEquity,
		s.PERatio,
		s.MarketCap,
		s.EPS,
		s.BookValue,
		s.NewsSentiment,
	}
}

// fitOLS solves the least squares problem over the 7 features plus an
// intercept column.
func fitOLS(rows []entity.Snapshot) (weights []float64, intercept float64, err error) {
	nFeatures := len(common.FeatureNames)
	m := len(rows)

	x := mat.NewDense(m, nFeatures+1, nil)
	y := mat.NewVecDense(m, nil)
	for i, row := range rows {
		x.Set(i, 0, 1)
		for j, v := range snapshotVector(row) {
			x.Set(i, j+1, v)
		}
		y.SetVec(i, row.RuleScore)
	}

	var qr mat.QR
	qr.Factorize(x)

	beta := mat.NewDense(nFeatures+1, 1, nil)
	if err := qr.SolveTo(beta, false, y); err != nil {
		// A Condition error signals near-singularity; the solution is still
		// usable. Anything else is fatal.
		if _, ok := err.(mat.Condition); !ok {
			return nil, 0, err
		}
	}

	intercept = beta.At(0, 0)
	weights = make([]float64, nFeatures)
	for j := 0; j < nFeatures; j++ {
		weights[j] = beta.At(j+1, 0)
	}
	return weights, intercept, nil
}

func featureMeans(rows []entity.Snapshot) []float64 {
	means := make([]float64, len(common.FeatureNames))
	for _, row := range rows {
		for j, v := range snapshotVector(row) {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(len(rows))
	}
	return means
}

func evaluate(model *mlmodel.Model, test []entity.Snapshot) (r2, rmse float64) {
	if len(test) == 0 {
		return 0, 0
	}

	meanY := 0.0
	for _, row := range test {
		meanY += row.RuleScore
	}
	meanY /= float64(len(test))

	evaluated := 0
	ssRes, ssTot := 0.0, 0.0
	for _, row := range test {
		pred, err := model.Predict(snapshotVector(row))
		if err != nil {
			continue
		}
		evaluated++
		ssRes += (row.RuleScore - pred) * (row.RuleScore - pred)
		ssTot += (row.RuleScore - meanY) * (row.RuleScore - meanY)
	}
	if evaluated == 0 {
		return 0, 0
	}

	rmse = math.Sqrt(ssRes / float64(evaluated))
	if ssTot == 0 {
		return 0, rmse
	}
	return 1 - ssRes/ssTot, rmse
}

package pipeline

import (
	"context"
	"time"

	"github.com/YuminosukeSato/scorecast/config"
	"github.com/YuminosukeSato/scorecast/core/model"
	"github.com/YuminosukeSato/scorecast/linear"
	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/YuminosukeSato/scorecast/pkg/log"
)

// TrainResult describes a completed training run.
type TrainResult struct {
	ModelPath     string
	FeatureNames  []string
	Coefficients  []float64
	Intercept     float64
	TrainSamples  int
	TestSamples   int
	DroppedRows   int
	TrainR2       float64
	TrainDuration time.Duration
}

// Train fits a linear regression on the train partition and writes the
// artifact to cfg.ModelPath, replacing any existing file.
func Train(ctx context.Context, cfg *config.Config) (*TrainResult, error) {
	logger := log.GetLoggerWithName("pipeline").With(
		log.OperationKey, log.OperationFit,
		log.ModelNameKey, "LinearRegression",
	)

	data, err := LoadDataPipeline(cfg)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "train")
	}

	start := time.Now()
	lr := linear.NewLinearRegression()
	if err := lr.Fit(data.XTrain, data.YTrain); err != nil {
		return nil, errors.Wrap(err, "fit")
	}
	elapsed := time.Since(start)

	r2, err := lr.Score(data.XTrain, data.YTrain)
	if err != nil {
		return nil, errors.Wrap(err, "score")
	}

	weights, err := lr.ExportWeights()
	if err != nil {
		return nil, err
	}
	artifact, err := model.NewArtifact(weights, data.FeatureNames)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "train")
	}
	if err := model.SaveArtifact(cfg.ModelPath, artifact); err != nil {
		return nil, err
	}

	logger.Info("Model trained",
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, len(data.TrainIndex),
		log.FeaturesKey, len(data.FeatureNames),
		log.R2ScoreKey, r2,
		log.HyperParamsKey, lr.GetParams(true),
		log.DurationMsKey, elapsed.Milliseconds(),
		log.ModelPathKey, cfg.ModelPath,
	)

	return &TrainResult{
		ModelPath:     cfg.ModelPath,
		FeatureNames:  append([]string(nil), data.FeatureNames...),
		Coefficients:  lr.Coef(),
		Intercept:     lr.Intercept(),
		TrainSamples:  len(data.TrainIndex),
		TestSamples:   len(data.TestIndex),
		DroppedRows:   data.Dropped,
		TrainR2:       r2,
		TrainDuration: elapsed,
	}, nil
}

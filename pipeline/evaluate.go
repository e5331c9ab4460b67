package pipeline

import (
	"context"

	"github.com/YuminosukeSato/scorecast/config"
	"github.com/YuminosukeSato/scorecast/core/model"
	"github.com/YuminosukeSato/scorecast/linear"
	"github.com/YuminosukeSato/scorecast/metrics"
	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/YuminosukeSato/scorecast/pkg/log"
	"github.com/YuminosukeSato/scorecast/predict"
	"gonum.org/v1/gonum/mat"
)

// EvalResult holds held-out metrics and the values they were computed from.
type EvalResult struct {
	metrics.Report

	Actual    []float64
	Predicted []float64
}

// Evaluate reloads the artifact at cfg.ModelPath, rebuilds the split with
// the same recipe as Train and scores the model on the test partition.
// Predictions are the raw model output; no clamping is applied.
func Evaluate(ctx context.Context, cfg *config.Config) (*EvalResult, error) {
	logger := log.GetLoggerWithName("pipeline").With(log.OperationKey, log.OperationScore)

	artifact, err := model.LoadArtifact(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	lr := linear.NewLinearRegression()
	if err := lr.ImportWeights(artifact.Model); err != nil {
		return nil, errors.Wrap(err, "restore model")
	}

	data, err := LoadDataPipeline(cfg)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "evaluate")
	}

	X := AlignMatrix(data.XTest, data.FeatureNames, artifact.FeatureNames)
	pred, err := lr.Predict(X)
	if err != nil {
		return nil, err
	}
	n := data.YTest.Len()
	yPred := mat.NewVecDense(n, mat.Col(nil, 0, pred))

	report, err := metrics.Regression(data.YTest, yPred)
	if err != nil {
		return nil, err
	}

	logger.Info("Model evaluated",
		log.PhaseKey, log.PhaseValidation,
		log.ModelPathKey, cfg.ModelPath,
		log.TestSamplesKey, n,
		log.MAEKey, report.MAE,
		log.RMSEKey, report.RMSE,
		log.R2ScoreKey, report.R2,
	)

	return &EvalResult{
		Report:    *report,
		Actual:    mat.Col(nil, 0, data.YTest),
		Predicted: mat.Col(nil, 0, yPred),
	}, nil
}

// AlignMatrix reorders the columns of X, named by from, into the order of
// to. Columns of to that are missing from from are zero.
func AlignMatrix(X mat.Matrix, from, to []string) *mat.Dense {
	rows, _ := X.Dims()
	out := mat.NewDense(rows, len(to), nil)
	row := make(map[string]float64, len(from))
	for i := 0; i < rows; i++ {
		for j, name := range from {
			row[name] = X.At(i, j)
		}
		out.SetRow(i, predict.AlignRow(row, to))
		clear(row)
	}
	return out
}

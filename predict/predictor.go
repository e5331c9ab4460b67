package predict

import (
	"math"

	"github.com/YuminosukeSato/scorecast/core/model"
	"github.com/YuminosukeSato/scorecast/linear"
	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/YuminosukeSato/scorecast/pkg/log"
)

// Score bounds applied to every prediction.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Result is a clamped, rounded prediction with the normalized input echoed.
type Result struct {
	PredictedScore float64 `json:"predicted_score"`
	Input          Input   `json:"input"`

	// RawScore is the model output before clamping and rounding.
	RawScore float64 `json:"-"`
	// Clamped reports whether RawScore was outside [MinScore, MaxScore].
	Clamped bool `json:"-"`
}

// Predictor runs inference against one loaded artifact. It is read-only
// after construction and safe for concurrent use.
type Predictor struct {
	artifact *model.Artifact
	model    *linear.LinearRegression
	logger   log.Logger
}

// NewPredictor restores the model held by a.
func NewPredictor(a *model.Artifact) (*Predictor, error) {
	if a == nil {
		return nil, errors.NewValueError("NewPredictor", "artifact is nil")
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	lr := linear.NewLinearRegression()
	if err := lr.ImportWeights(a.Model); err != nil {
		return nil, errors.Wrap(err, "restore model")
	}
	return &Predictor{
		artifact: a,
		model:    lr,
		logger:   log.GetLoggerWithName("predict"),
	}, nil
}

// LoadPredictor reads the artifact at path and restores its model. Each call
// reads the file again; long-running processes should use a Loader.
func LoadPredictor(path string) (*Predictor, error) {
	a, err := model.LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	return NewPredictor(a)
}

// Predict validates in, aligns its feature row to the artifact's feature
// order and returns the model output clamped to [0, 100] and rounded to two
// decimals.
func (p *Predictor) Predict(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	x := AlignRow(BuildFeatureRow(in), p.artifact.FeatureNames)
	raw, err := p.model.PredictRow(x)
	if err != nil {
		return nil, err
	}

	clipped := errors.ClipValue(raw, MinScore, MaxScore)
	res := &Result{
		PredictedScore: Round2(clipped),
		Input:          in,
		RawScore:       raw,
		Clamped:        clipped != raw,
	}
	if res.Clamped {
		p.logger.Debug("Prediction clamped",
			log.RawPredictionKey, raw,
			log.PredictionKey, res.PredictedScore,
		)
	}
	return res, nil
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ModelType returns the class name of the restored model.
func (p *Predictor) ModelType() string {
	return p.artifact.Model.ModelType
}

// FeatureNames returns the training feature order recorded in the artifact.
func (p *Predictor) FeatureNames() []string {
	return append([]string(nil), p.artifact.FeatureNames...)
}

// Params returns the model hyperparameters.
func (p *Predictor) Params() map[string]interface{} {
	return p.model.GetParams(true)
}

// Coefficients returns the fitted coefficients in feature order.
func (p *Predictor) Coefficients() []float64 {
	return p.model.Coef()
}

// Intercept returns the fitted intercept.
func (p *Predictor) Intercept() float64 {
	return p.model.Intercept()
}

// Package model defines the estimator interfaces, the serializable weight
// format and the on-disk model artifact.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines interfaces for regression models.
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// WeightsPorter is implemented by models whose learned state can be
// exported to and restored from ModelWeights.
type WeightsPorter interface {
	ExportWeights() (*ModelWeights, error)
	ImportWeights(weights *ModelWeights) error
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams(deep bool) map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	// SetParams sets the model's hyperparameters.
	SetParams(params map[string]interface{}) error
}

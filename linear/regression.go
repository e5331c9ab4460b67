// Package linear provides ordinary least squares linear regression.
package linear

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/scorecast/core/model"
	"github.com/YuminosukeSato/scorecast/metrics"
	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	modelType    = "LinearRegression"
	modelVersion = "1.0.0"
)

// LinearRegression is a linear regression model using ordinary least squares,
// following scikit-learn's LinearRegression semantics.
type LinearRegression struct {
	state *model.StateManager

	// Hyperparameters
	fitIntercept bool    // Whether to learn the intercept
	copyX        bool    // Whether to copy input data before centering
	rcond        float64 // Relative cutoff for small singular values; <0 means machine precision

	// Learned parameters
	coef      []float64
	intercept float64
	rank      int
	singular  []float64
}

var (
	_ model.Regressor       = (*LinearRegression)(nil)
	_ model.WeightsPorter   = (*LinearRegression)(nil)
	_ model.ParameterGetter = (*LinearRegression)(nil)
	_ model.ParameterSetter = (*LinearRegression)(nil)
)

// NewLinearRegression は新しいLinearRegressionモデルを作成
func NewLinearRegression(options ...Option) *LinearRegression {
	lr := &LinearRegression{
		state:        model.NewStateManager(),
		fitIntercept: true,
		copyX:        true,
		rcond:        -1,
	}
	for _, opt := range options {
		opt(lr)
	}
	return lr
}

// Fit はモデルを訓練データで学習
//
// 切片を学習する場合はXとyを中心化し、特異値分解による最小ノルム最小二乗解を求める。
// ワンホット列と切片のように列が線形従属でも解は一意に定まる。
// 失敗した場合、モデルは未学習状態に戻る。
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	lr.state.Reset()

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if rows != yRows {
		return errors.NewDimensionError("LinearRegression.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("LinearRegression.Fit", 1, yCols, 1)
	}

	// データのコピー（必要な場合）
	var XWork *mat.Dense
	if d, ok := X.(*mat.Dense); ok && !lr.copyX {
		XWork = d
	} else {
		XWork = mat.DenseCopyOf(X)
	}
	yWork := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yWork.SetVec(i, y.At(i, 0))
	}

	xMean := make([]float64, cols)
	var yMean float64
	if lr.fitIntercept {
		for j := 0; j < cols; j++ {
			var s float64
			for i := 0; i < rows; i++ {
				s += XWork.At(i, j)
			}
			xMean[j] = s / float64(rows)
		}
		for i := 0; i < rows; i++ {
			yMean += yWork.AtVec(i)
		}
		yMean /= float64(rows)

		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				XWork.Set(i, j, XWork.At(i, j)-xMean[j])
			}
			yWork.SetVec(i, yWork.AtVec(i)-yMean)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(XWork, mat.SVDThin); !ok {
		return errors.NewModelError("LinearRegression.Fit", "SVD factorization failed", nil)
	}

	rcond := lr.rcond
	if rcond < 0 {
		rcond = eps * float64(max(rows, cols))
	}
	rank := svd.Rank(rcond)

	coef := mat.NewVecDense(cols, nil)
	if rank > 0 {
		svd.SolveVecTo(coef, yWork, rank)
	}

	lr.coef = make([]float64, cols)
	for j := 0; j < cols; j++ {
		lr.coef[j] = coef.AtVec(j)
	}
	lr.intercept = 0
	if lr.fitIntercept {
		lr.intercept = yMean
		for j := 0; j < cols; j++ {
			lr.intercept -= xMean[j] * lr.coef[j]
		}
	}
	lr.rank = rank
	lr.singular = svd.Values(nil)

	if err := errors.CheckNumericalStability("LinearRegression.Fit coefficients", lr.coef, 0); err != nil {
		return err
	}
	if err := errors.CheckScalar("LinearRegression.Fit intercept", lr.intercept, 0); err != nil {
		return err
	}

	lr.state.SetFitted(cols, rows)
	return nil
}

// eps is the float64 machine epsilon used for the default rcond.
var eps = math.Nextafter(1, 2) - 1

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.state.RequireFitted(modelType, "Predict"); err != nil {
		return nil, err
	}

	rows, cols := X.Dims()
	if cols != len(lr.coef) {
		return nil, errors.NewDimensionError("LinearRegression.Predict", len(lr.coef), cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		pred := lr.intercept
		for j := 0; j < cols; j++ {
			pred += X.At(i, j) * lr.coef[j]
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// PredictRow predicts a single sample whose values are in training feature order.
func (lr *LinearRegression) PredictRow(row []float64) (float64, error) {
	pred, err := lr.Predict(mat.NewDense(1, len(row), append([]float64(nil), row...)))
	if err != nil {
		return 0, err
	}
	return pred.At(0, 0), nil
}

// Score はモデルの決定係数（R²）を計算
// yの分散が0の場合はNaNを返し、UndefinedMetricWarningを発生させる。
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	rows, _ := y.Dims()
	yTrue := mat.NewVecDense(rows, nil)
	yPred := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yTrue.SetVec(i, y.At(i, 0))
		yPred.SetVec(i, predictions.At(i, 0))
	}
	return metrics.R2Score(yTrue, yPred)
}

// Coef は学習された重み係数を返す
func (lr *LinearRegression) Coef() []float64 {
	if lr.coef == nil {
		return nil
	}
	return append([]float64(nil), lr.coef...)
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// Rank returns the effective rank of the (centered) design matrix.
func (lr *LinearRegression) Rank() int {
	return lr.rank
}

// SingularValues returns the singular values of the (centered) design matrix.
func (lr *LinearRegression) SingularValues() []float64 {
	return append([]float64(nil), lr.singular...)
}

// NFeatures returns the number of features seen during Fit.
func (lr *LinearRegression) NFeatures() int {
	n, _ := lr.state.Dimensions()
	return n
}

// IsFitted returns whether the model has been fitted
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// GetParams returns the model's hyperparameters (scikit-learn compatible)
func (lr *LinearRegression) GetParams(deep bool) map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": lr.fitIntercept,
		"copy_X":        lr.copyX,
		"rcond":         lr.rcond,
	}
}

// SetParams sets the model's hyperparameters (scikit-learn compatible).
// Unknown keys are rejected.
func (lr *LinearRegression) SetParams(params map[string]interface{}) error {
	for k, v := range params {
		switch k {
		case "fit_intercept":
			b, ok := v.(bool)
			if !ok {
				return errors.NewValidationError(k, "must be a bool", v)
			}
			lr.fitIntercept = b
		case "copy_X":
			b, ok := v.(bool)
			if !ok {
				return errors.NewValidationError(k, "must be a bool", v)
			}
			lr.copyX = b
		case "rcond":
			f, ok := v.(float64)
			if !ok {
				return errors.NewValidationError(k, "must be a number", v)
			}
			lr.rcond = f
		default:
			return errors.NewValidationError(k, "unknown parameter", v)
		}
	}
	return nil
}

// ExportWeights はモデルの重みをエクスポート（チェックサム付き）
func (lr *LinearRegression) ExportWeights() (*model.ModelWeights, error) {
	if err := lr.state.RequireFitted(modelType, "ExportWeights"); err != nil {
		return nil, err
	}
	nFeatures, nSamples := lr.state.Dimensions()
	weights := &model.ModelWeights{
		ModelType:       modelType,
		Version:         modelVersion,
		Coefficients:    lr.Coef(),
		Intercept:       lr.intercept,
		IsFitted:        true,
		Hyperparameters: lr.GetParams(true),
		Metadata: map[string]interface{}{
			"n_features": nFeatures,
			"n_samples":  nSamples,
			"rank":       lr.rank,
		},
	}
	weights.Seal()
	return weights, nil
}

// ImportWeights はモデルの重みをインポートし、チェックサムを検証する
func (lr *LinearRegression) ImportWeights(weights *model.ModelWeights) error {
	if weights == nil {
		return errors.NewValueError("LinearRegression.ImportWeights", "weights cannot be nil")
	}
	if weights.ModelType != modelType {
		return errors.NewValueError("LinearRegression.ImportWeights",
			fmt.Sprintf("model type mismatch: expected %s, got %s", modelType, weights.ModelType))
	}
	if err := weights.Validate(); err != nil {
		return err
	}
	if err := weights.VerifyChecksum(); err != nil {
		return err
	}
	if err := lr.SetParams(weights.Hyperparameters); err != nil {
		return err
	}

	lr.coef = append([]float64(nil), weights.Coefficients...)
	lr.intercept = weights.Intercept
	lr.rank = intMeta(weights.Metadata, "rank")

	nSamples := intMeta(weights.Metadata, "n_samples")
	lr.state.SetFitted(len(lr.coef), nSamples)
	return nil
}

// intMeta reads an integer metadata value that may have round-tripped through JSON.
func intMeta(meta map[string]interface{}, key string) int {
	switch v := meta[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// String returns the string representation of the model
func (lr *LinearRegression) String() string {
	if !lr.state.IsFitted() {
		return fmt.Sprintf("LinearRegression(fit_intercept=%t, copy_X=%t)", lr.fitIntercept, lr.copyX)
	}
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, n_features=%d, rank=%d, fitted=true)",
		lr.fitIntercept, len(lr.coef), lr.rank)
}

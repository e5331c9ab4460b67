// Package metrics provides regression evaluation metrics.
package metrics

import (
	"math"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil || yTrue.IsEmpty() {
		return 0, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred.IsEmpty() || yPred.Len() != n {
		got := 0
		if !yPred.IsEmpty() {
			got = yPred.Len()
		}
		return 0, errors.NewDimensionError(op, n, got, 0)
	}
	return n, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score は決定係数（R²）を計算する
//
// yTrueの分散が0の場合（全て同じ値、または1サンプルのみ）はR²が定義できないため、
// NaNを返し UndefinedMetricWarning を発生させる。エラーにはしない。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	yMean := stat.Mean(mat.Col(nil, 0, yTrue), nil)

	// 全変動（TSS）と残差変動（RSS）
	var tss, rss float64
	for i := 0; i < n; i++ {
		yt := yTrue.AtVec(i)
		d := yt - yPred.AtVec(i)
		tss += (yt - yMean) * (yt - yMean)
		rss += d * d
	}

	if tss == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("r2_score", "zero variance in y_true", math.NaN()))
		return math.NaN(), nil
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// Report bundles the regression metrics reported by evaluation.
type Report struct {
	MAE         float64 `json:"mae"`
	MSE         float64 `json:"mse"`
	RMSE        float64 `json:"rmse"`
	R2          float64 `json:"r2"`
	TestSamples int     `json:"test_samples"`
}

// Regression computes MAE, MSE, RMSE and R² in one call.
func Regression(yTrue, yPred *mat.VecDense) (*Report, error) {
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	return &Report{
		MAE:         mae,
		MSE:         mse,
		RMSE:        math.Sqrt(mse),
		R2:          r2,
		TestSamples: yTrue.Len(),
	}, nil
}

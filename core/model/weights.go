package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
)

// ChecksumKey is the Metadata key holding the coefficient checksum.
const ChecksumKey = "checksum"

// ModelWeights はモデルの重みを表す構造体（シリアライゼーション用）
type ModelWeights struct {
	// ModelType はモデルの種類（LinearRegression）
	ModelType string `json:"model_type"`

	// Version はモデルのバージョン（互換性チェック用）
	Version string `json:"version"`

	// Coefficients は重み係数
	Coefficients []float64 `json:"coefficients"`

	// Intercept は切片
	Intercept float64 `json:"intercept"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata は追加のメタデータ（学習時の統計、チェックサム等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValueError("ModelWeights.Validate", "model_type is required")
	}
	if mw.Version == "" {
		return errors.NewValueError("ModelWeights.Validate", "version is required")
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValueError("ModelWeights.Validate", "unfitted model should not have coefficients")
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValueError("ModelWeights.Validate", "fitted model must have coefficients")
	}
	if math.IsNaN(mw.Intercept) || math.IsInf(mw.Intercept, 0) {
		return errors.NewNumericalInstabilityError("intercept", []float64{mw.Intercept}, 0)
	}
	return errors.CheckNumericalStability("coefficients", mw.Coefficients, 0)
}

// Checksum はcoefficientsとinterceptのSHA-256を16進文字列で返す
func (mw *ModelWeights) Checksum() string {
	data, _ := json.Marshal(append(append([]float64(nil), mw.Coefficients...), mw.Intercept))
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Seal はチェックサムをMetadataに記録する
func (mw *ModelWeights) Seal() {
	if mw.Metadata == nil {
		mw.Metadata = make(map[string]interface{})
	}
	mw.Metadata[ChecksumKey] = mw.Checksum()
}

// VerifyChecksum は記録されたチェックサムと再計算した値を比較する。
// チェックサムが記録されていない場合は何もしない。
func (mw *ModelWeights) VerifyChecksum() error {
	recorded, ok := mw.Metadata[ChecksumKey].(string)
	if !ok {
		return nil
	}
	if recorded != mw.Checksum() {
		return errors.Wrap(errors.ErrChecksumMismatch, "weights may be corrupted")
	}
	return nil
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		Intercept:       mw.Intercept,
		IsFitted:        mw.IsFitted,
		Coefficients:    make([]float64, len(mw.Coefficients)),
		Hyperparameters: make(map[string]interface{}, len(mw.Hyperparameters)),
		Metadata:        make(map[string]interface{}, len(mw.Metadata)),
	}
	copy(clone.Coefficients, mw.Coefficients)
	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}
	return clone
}

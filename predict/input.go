// Package predict holds the single-row inference shared by the CLI and the
// HTTP server: input validation, feature-row construction, alignment to the
// artifact's feature order, clamping and rounding.
package predict

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/YuminosukeSato/scorecast/preprocessing"
)

// DefaultDifficulty is used when a request omits exam_difficulty entirely.
// A present but empty or padded value is not replaced.
const DefaultDifficulty = "Medium"

// Input is one prediction request.
type Input struct {
	HoursStudied   float64 `json:"hours_studied"`
	ExamDifficulty string  `json:"exam_difficulty"`
}

// Validate rejects non-finite hours and a difficulty that is not exactly
// one of Easy, Medium or Hard. Hours are otherwise unrestricted.
func (in Input) Validate() error {
	if math.IsNaN(in.HoursStudied) || math.IsInf(in.HoursStudied, 0) {
		return errors.NewValidationError("hours_studied", "must be a finite number", in.HoursStudied)
	}
	if !preprocessing.NewDifficultyEncoder().Known(in.ExamDifficulty) {
		return errors.NewValidationError("exam_difficulty",
			"must be one of "+strings.Join(preprocessing.DifficultyCategories, ", "), in.ExamDifficulty)
	}
	return nil
}

// ParseHours coerces a decoded JSON value to hours. Numbers and numeric
// strings are accepted; a missing value or anything else is a
// *errors.ValidationError.
func ParseHours(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, errors.NewValidationError("hours_studied", "is required", nil)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, errors.NewValidationError("hours_studied", "must be a finite number", x)
		}
		return x, nil
	case float32:
		return ParseHours(float64(x))
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return ParseHours(x.String())
	case string:
		f, err := preprocessing.ParseNumber(x)
		if err != nil {
			return 0, errors.NewValidationError("hours_studied", "must be a number", x)
		}
		return f, nil
	}
	return 0, errors.NewValidationError("hours_studied", "must be a number", v)
}

// BuildFeatureRow builds the named feature values for in, using the same
// indicator encoding as training.
func BuildFeatureRow(in Input) map[string]float64 {
	row := preprocessing.NewDifficultyEncoder().EncodeMap(in.ExamDifficulty)
	row[preprocessing.HoursColumn] = in.HoursStudied
	return row
}

// AlignRow orders row by names. Names absent from row are 0.0; entries of
// row not in names are dropped.
func AlignRow(row map[string]float64, names []string) []float64 {
	out := make([]float64, len(names))
	for i, name := range names {
		out[i] = row[name]
	}
	return out
}

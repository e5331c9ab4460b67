// Package preprocessing turns raw dataset tables into numeric feature
// matrices: categorical expansion, numeric coercion and invalid-row removal.
package preprocessing

import (
	"math"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/scorecast/dataset"
	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Column names of the student scores dataset.
const (
	HoursColumn      = "hours_studied"
	DifficultyColumn = "exam_difficulty"
	DefaultTarget    = "score"
)

// DefaultFeatureColumns is the feature selection used when none is given.
var DefaultFeatureColumns = []string{HoursColumn, DifficultyColumn}

// Features is a numeric feature matrix with its ordered column names.
type Features struct {
	// Names are the feature names in column order.
	Names []string

	// X は n_samples × n_features の行列
	X *mat.Dense

	// RowIndex maps each row of X to its row in the source table.
	RowIndex []int

	// Dropped counts source rows removed because a value could not be parsed.
	Dropped int
}

// NumSamples returns the number of rows of X.
func (f *Features) NumSamples() int {
	r, _ := f.X.Dims()
	return r
}

type prepareConfig struct {
	features []string
	target   string
}

// PrepareOption configures PrepareFeaturesAndTarget.
type PrepareOption func(*prepareConfig)

// WithFeatureColumns selects the raw feature columns. An empty call keeps
// the default selection.
func WithFeatureColumns(cols ...string) PrepareOption {
	return func(c *prepareConfig) {
		if len(cols) > 0 {
			c.features = append([]string(nil), cols...)
		}
	}
}

// WithTargetColumn selects the target column.
func WithTargetColumn(name string) PrepareOption {
	return func(c *prepareConfig) {
		if name != "" {
			c.target = name
		}
	}
}

// FeatureNames returns the model feature names produced for the raw
// columns cols: exam_difficulty expands to its indicator columns in place,
// every other column keeps its name.
func FeatureNames(cols []string) []string {
	enc := NewDifficultyEncoder()
	var names []string
	for _, c := range cols {
		if c == DifficultyColumn {
			names = append(names, enc.FeatureNames()...)
			continue
		}
		names = append(names, c)
	}
	return names
}

// PrepareFeaturesAndTarget selects features and the target from t, one-hot
// encodes exam_difficulty over Easy/Medium/Hard, coerces the remaining
// columns to float64 and drops every row holding a value that could not be
// parsed. t is not modified.
//
// Errors:
//   - *errors.MissingColumnError when a requested column is absent
//   - errors.ErrEmptyDataset when no valid row remains
func PrepareFeaturesAndTarget(t *dataset.Table, opts ...PrepareOption) (*Features, *mat.VecDense, error) {
	cfg := &prepareConfig{
		features: append([]string(nil), DefaultFeatureColumns...),
		target:   DefaultTarget,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if t == nil {
		return nil, nil, errors.NewValueError("PrepareFeaturesAndTarget", "table is nil")
	}

	if err := requireColumns(t, append(append([]string(nil), cfg.features...), cfg.target)); err != nil {
		return nil, nil, err
	}

	n := t.NumRows()
	names := FeatureNames(cfg.features)
	values := make([][]float64, len(names)) // column-major
	enc := NewDifficultyEncoder()

	col := 0
	for _, c := range cfg.features {
		raw, _ := t.Column(c)
		if c == DifficultyColumn {
			for k := range enc.Categories {
				values[col+k] = make([]float64, n)
			}
			for i, v := range raw {
				for k, ind := range enc.EncodeValue(v) {
					values[col+k][i] = ind
				}
			}
			col += len(enc.Categories)
			continue
		}
		values[col] = parseColumn(raw)
		col++
	}
	rawTarget, _ := t.Column(cfg.target)
	target := parseColumn(rawTarget)

	var keep []int
	for i := 0; i < n; i++ {
		if !finite(target[i]) {
			continue
		}
		ok := true
		for j := range values {
			if !finite(values[j][i]) {
				ok = false
				break
			}
		}
		if ok {
			keep = append(keep, i)
		}
	}

	dropped := n - len(keep)
	if len(keep) == 0 {
		return nil, nil, errors.Wrapf(errors.ErrEmptyDataset,
			"no valid rows after dropping %d rows with unparseable values", dropped)
	}

	X := mat.NewDense(len(keep), len(names), nil)
	y := mat.NewVecDense(len(keep), nil)
	for r, i := range keep {
		for j := range values {
			X.Set(r, j, values[j][i])
		}
		y.SetVec(r, target[i])
	}

	return &Features{
		Names:    names,
		X:        X,
		RowIndex: keep,
		Dropped:  dropped,
	}, y, nil
}

// requireColumns returns a MissingColumnError listing the absent columns in
// request order.
func requireColumns(t *dataset.Table, cols []string) error {
	var missing []string
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c] {
			continue
		}
		seen[c] = true
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return errors.NewMissingColumnError(missing, t.Columns())
	}
	return nil
}

// parseColumn coerces strings to float64; unparseable cells become NaN.
func parseColumn(raw []string) []float64 {
	out := make([]float64, len(raw))
	for i, s := range raw {
		v, err := ParseNumber(s)
		if err != nil {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

// ParseNumber parses a decimal number, ignoring surrounding whitespace.
// NaN and infinities are rejected.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse number %q", s)
	}
	if !finite(v) {
		return 0, errors.Newf("non-finite value %q", s)
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package predict

import (
	"encoding/json"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/YuminosukeSato/scorecast/core/model"
	"github.com/YuminosukeSato/scorecast/linear"
	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var featureNames = []string{"hours_studied", "difficulty_Easy", "difficulty_Medium", "difficulty_Hard"}

// constantArtifact builds an artifact whose model always returns value.
func constantArtifact(t *testing.T, value float64) *model.Artifact {
	t.Helper()
	w := &model.ModelWeights{
		ModelType:    "LinearRegression",
		Version:      "1.0.0",
		Coefficients: []float64{0, 0, 0, 0},
		Intercept:    value,
		IsFitted:     true,
		Hyperparameters: map[string]interface{}{
			"fit_intercept": true,
			"copy_X":        true,
			"rcond":         -1.0,
		},
	}
	a, err := model.NewArtifact(w, featureNames)
	require.NoError(t, err)
	return a
}

// trainedArtifact fits score = 40 + 5*hours + {Easy:10, Medium:0, Hard:-10}.
func trainedArtifact(t *testing.T) (*model.Artifact, *linear.LinearRegression) {
	t.Helper()
	rows := [][]float64{
		{1, 1, 0, 0}, {2, 0, 1, 0}, {3, 0, 0, 1},
		{4, 1, 0, 0}, {5, 0, 1, 0}, {6, 0, 0, 1},
		{7, 1, 0, 0}, {8, 0, 1, 0},
	}
	X := mat.NewDense(len(rows), 4, nil)
	y := mat.NewDense(len(rows), 1, nil)
	offset := []float64{10, 0, -10}
	for i, r := range rows {
		X.SetRow(i, r)
		v := 40 + 5*r[0]
		for k := 0; k < 3; k++ {
			v += r[k+1] * offset[k]
		}
		y.Set(i, 0, v)
	}
	lr := linear.NewLinearRegression()
	require.NoError(t, lr.Fit(X, y))
	w, err := lr.ExportWeights()
	require.NoError(t, err)
	a, err := model.NewArtifact(w, featureNames)
	require.NoError(t, err)
	return a, lr
}

func TestPredictClamps(t *testing.T) {
	tests := []struct {
		name    string
		raw     float64
		want    float64
		clamped bool
	}{
		{"above range", 150, 100, true},
		{"below range", -20, 0, true},
		{"in range", 73.456, 73.46, false},
		{"upper bound", 100, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPredictor(constantArtifact(t, tt.raw))
			require.NoError(t, err)

			res, err := p.Predict(Input{HoursStudied: 5, ExamDifficulty: "Medium"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.PredictedScore)
			assert.InDelta(t, tt.raw, res.RawScore, 1e-9)
			assert.Equal(t, tt.clamped, res.Clamped)
		})
	}
}

func TestPredictMatchesModelOutput(t *testing.T) {
	a, lr := trainedArtifact(t)
	p, err := NewPredictor(a)
	require.NoError(t, err)

	res, err := p.Predict(Input{HoursStudied: 4, ExamDifficulty: "Easy"})
	require.NoError(t, err)

	direct, err := lr.PredictRow([]float64{4, 1, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, direct, res.RawScore, 1e-9)
	assert.InDelta(t, 70.0, res.PredictedScore, 1e-6)
	assert.Equal(t, Input{HoursStudied: 4, ExamDifficulty: "Easy"}, res.Input)
}

func TestPredictDefaultDifficulty(t *testing.T) {
	a, _ := trainedArtifact(t)
	p, err := NewPredictor(a)
	require.NoError(t, err)

	res, err := p.Predict(Input{HoursStudied: 2, ExamDifficulty: DefaultDifficulty})
	require.NoError(t, err)
	assert.Equal(t, "Medium", res.Input.ExamDifficulty)
	assert.InDelta(t, 50.0, res.PredictedScore, 1e-6)
}

func TestPredictRejectsInvalidDifficulty(t *testing.T) {
	p, err := NewPredictor(constantArtifact(t, 50))
	require.NoError(t, err)

	for _, d := range []string{"Invalid", "medium", "EASY", "", "   ", " Easy "} {
		_, err := p.Predict(Input{HoursStudied: 5, ExamDifficulty: d})
		require.Error(t, err, d)
		assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    float64
		wantErr bool
	}{
		{"float", 4.5, 4.5, false},
		{"int", 3, 3, false},
		{"json number", json.Number("2.25"), 2.25, false},
		{"numeric string", " 7 ", 7, false},
		{"negative", -1.0, -1, false},
		{"missing", nil, 0, true},
		{"word", "abc", 0, true},
		{"bool", true, 0, true},
		{"list", []any{1.0}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHours(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.KindValidation, errors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildAndAlignRow(t *testing.T) {
	row := BuildFeatureRow(Input{HoursStudied: 3.5, ExamDifficulty: "Hard"})
	assert.Equal(t, map[string]float64{
		"hours_studied":     3.5,
		"difficulty_Easy":   0,
		"difficulty_Medium": 0,
		"difficulty_Hard":   1,
	}, row)

	// reordered, padded, and extra columns dropped
	names := []string{"difficulty_Hard", "extra_feature", "hours_studied"}
	assert.Equal(t, []float64{1, 0, 3.5}, AlignRow(row, names))
}

func TestLoadPredictorFromDisk(t *testing.T) {
	a, _ := trainedArtifact(t)
	path := filepath.Join(t.TempDir(), "models", "model.joblib")
	require.NoError(t, model.SaveArtifact(path, a))

	p, err := LoadPredictor(path)
	require.NoError(t, err)
	assert.Equal(t, "LinearRegression", p.ModelType())
	assert.Equal(t, featureNames, p.FeatureNames())
	assert.Equal(t, true, p.Params()["fit_intercept"])
	assert.Len(t, p.Coefficients(), 4)

	_, err = LoadPredictor(filepath.Join(t.TempDir(), "absent.joblib"))
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
}

func TestLoaderLoadsOnce(t *testing.T) {
	a, _ := trainedArtifact(t)
	var calls atomic.Int32
	l := NewLoader("models/model.joblib")
	l.load = func(string) (*Predictor, error) {
		calls.Add(1)
		return NewPredictor(a)
	}
	assert.False(t, l.Loaded())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Get()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, l.Loaded())
}

func TestLoaderRetriesAfterFailure(t *testing.T) {
	a, _ := trainedArtifact(t)
	var calls int
	l := NewLoader("models/model.joblib")
	l.load = func(path string) (*Predictor, error) {
		calls++
		if calls == 1 {
			return nil, errors.NewNotFoundError("model artifact", path)
		}
		return NewPredictor(a)
	}

	_, err := l.Get()
	require.Error(t, err)
	assert.False(t, l.Loaded())

	p, err := l.Get()
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Equal(t, 2, calls)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.235001))
	assert.Equal(t, -3.5, Round2(-3.5))
}

package model

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWeights() *ModelWeights {
	return &ModelWeights{
		ModelType:       "LinearRegression",
		Version:         "1.0.0",
		Coefficients:    []float64{5.0, 10.0, 0.0, -10.0},
		Intercept:       40.0,
		IsFitted:        true,
		Hyperparameters: map[string]interface{}{"fit_intercept": true},
		Metadata:        map[string]interface{}{"n_samples": 80},
	}
}

var sampleFeatures = []string{"hours_studied", "difficulty_Easy", "difficulty_Medium", "difficulty_Hard"}

func TestSaveAndLoadArtifact(t *testing.T) {
	a, err := NewArtifact(sampleWeights(), sampleFeatures)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "models", "model.joblib")
	require.NoError(t, SaveArtifact(path, a))

	loaded, err := LoadArtifact(path)
	require.NoError(t, err)

	assert.Equal(t, sampleFeatures, loaded.FeatureNames)
	assert.Equal(t, a.Model.Coefficients, loaded.Model.Coefficients)
	assert.Equal(t, a.Model.Intercept, loaded.Model.Intercept)
	assert.Equal(t, a.Model.Checksum(), loaded.Model.Metadata[ChecksumKey])
}

func TestSaveArtifactOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.joblib")

	first, err := NewArtifact(sampleWeights(), sampleFeatures)
	require.NoError(t, err)
	require.NoError(t, SaveArtifact(path, first))

	w := sampleWeights()
	w.Intercept = 12.5
	second, err := NewArtifact(w, sampleFeatures)
	require.NoError(t, err)
	require.NoError(t, SaveArtifact(path, second))

	loaded, err := LoadArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, 12.5, loaded.Model.Intercept)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestLoadArtifactMissing(t *testing.T) {
	_, err := LoadArtifact(filepath.Join(t.TempDir(), "absent.joblib"))
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
}

func TestReadArtifactDetectsTampering(t *testing.T) {
	a, err := NewArtifact(sampleWeights(), sampleFeatures)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = a.WriteTo(&buf)
	require.NoError(t, err)

	tampered := bytes.Replace(buf.Bytes(), []byte(`"intercept": 40`), []byte(`"intercept": 41`), 1)
	_, err = ReadArtifact(bytes.NewReader(tampered))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrChecksumMismatch))
}

func TestArtifactValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *ModelWeights) []string
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(w *ModelWeights) []string { return sampleFeatures },
		},
		{
			name:    "feature count mismatch",
			mutate:  func(w *ModelWeights) []string { return sampleFeatures[:2] },
			wantErr: true,
		},
		{
			name: "duplicate feature",
			mutate: func(w *ModelWeights) []string {
				return []string{"hours_studied", "hours_studied", "difficulty_Medium", "difficulty_Hard"}
			},
			wantErr: true,
		},
		{
			name: "nan coefficient",
			mutate: func(w *ModelWeights) []string {
				w.Coefficients[0] = math.NaN()
				return sampleFeatures
			},
			wantErr: true,
		},
		{
			name: "unfitted",
			mutate: func(w *ModelWeights) []string {
				w.IsFitted = false
				return sampleFeatures
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := sampleWeights()
			features := tt.mutate(w)
			_, err := NewArtifact(w, features)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWeightsCloneIsDeep(t *testing.T) {
	w := sampleWeights()
	c := w.Clone()
	c.Coefficients[0] = 99
	c.Metadata["n_samples"] = 1

	assert.Equal(t, 5.0, w.Coefficients[0])
	assert.Equal(t, 80, w.Metadata["n_samples"])
}

func TestStateManager(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	err := s.RequireFitted("LinearRegression", "Predict")
	var nf *errors.NotFittedError
	require.True(t, errors.As(err, &nf))

	s.SetFitted(4, 80)
	assert.NoError(t, s.RequireFitted("LinearRegression", "Predict"))
	f, n := s.Dimensions()
	assert.Equal(t, 4, f)
	assert.Equal(t, 80, n)

	s.Reset()
	assert.False(t, s.IsFitted())
	f, n = s.Dimensions()
	assert.Equal(t, 0, f)
	assert.Equal(t, 0, n)
}

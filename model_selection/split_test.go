package model_selection

import (
	"sort"
	"testing"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// rowData builds X with one column whose value is the row index, so the
// source row of every partition row is visible.
func rowData(n int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(i*10))
		y.SetVec(i, float64(i*100))
	}
	return X, y
}

func TestTrainTestSplitSizes(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		testSize float64
		wantTest int
	}{
		{"five rows", 5, 0.2, 1},
		{"ten rows", 10, 0.2, 2},
		{"rounds up", 11, 0.2, 3},
		{"half", 8, 0.5, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X, y := rowData(tt.n)
			s, err := TrainTestSplit(X, y, WithTestSize(tt.testSize))
			require.NoError(t, err)

			assert.Len(t, s.TestIndex, tt.wantTest)
			assert.Equal(t, tt.n, len(s.TrainIndex)+len(s.TestIndex))
			assert.Equal(t, tt.wantTest, s.YTest.Len())
			assert.Equal(t, tt.n-tt.wantTest, s.YTrain.Len())
			assert.InDelta(t, tt.testSize*float64(tt.n), float64(len(s.TestIndex)), 1)
		})
	}
}

func TestTrainTestSplitCoversEveryRowOnce(t *testing.T) {
	X, y := rowData(37)
	s, err := TrainTestSplit(X, y)
	require.NoError(t, err)

	all := append(append([]int(nil), s.TrainIndex...), s.TestIndex...)
	sort.Ints(all)
	for i, v := range all {
		assert.Equal(t, i, v)
	}
}

func TestTrainTestSplitAligned(t *testing.T) {
	X, y := rowData(20)
	s, err := TrainTestSplit(X, y, WithRandomState(7))
	require.NoError(t, err)

	for r, src := range s.TrainIndex {
		assert.Equal(t, float64(src), s.XTrain.At(r, 0))
		assert.Equal(t, float64(src*10), s.XTrain.At(r, 1))
		assert.Equal(t, float64(src*100), s.YTrain.AtVec(r))
	}
	for r, src := range s.TestIndex {
		assert.Equal(t, float64(src), s.XTest.At(r, 0))
		assert.Equal(t, float64(src*100), s.YTest.AtVec(r))
	}
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	X, y := rowData(50)

	a, err := TrainTestSplit(X, y, WithTestSize(0.3), WithRandomState(42))
	require.NoError(t, err)
	b, err := TrainTestSplit(X, y, WithTestSize(0.3), WithRandomState(42))
	require.NoError(t, err)

	assert.Equal(t, a.TrainIndex, b.TrainIndex)
	assert.Equal(t, a.TestIndex, b.TestIndex)
	assert.True(t, mat.Equal(a.XTest, b.XTest))

	c, err := TrainTestSplit(X, y, WithTestSize(0.3), WithRandomState(43))
	require.NoError(t, err)
	assert.NotEqual(t, a.TestIndex, c.TestIndex)
}

func TestTrainTestSplitDoesNotAliasInput(t *testing.T) {
	X, y := rowData(10)
	s, err := TrainTestSplit(X, y)
	require.NoError(t, err)

	s.XTrain.Set(0, 0, -1)
	s.YTrain.SetVec(0, -1)
	for i := 0; i < 10; i++ {
		assert.Equal(t, float64(i), X.At(i, 0))
		assert.Equal(t, float64(i*100), y.AtVec(i))
	}
}

func TestTrainTestSplitErrors(t *testing.T) {
	X, y := rowData(5)

	tests := []struct {
		name string
		X    *mat.Dense
		y    *mat.VecDense
		opts []SplitOption
		kind errors.Kind
	}{
		{"zero test size", X, y, []SplitOption{WithTestSize(0)}, errors.KindValidation},
		{"test size one", X, y, []SplitOption{WithTestSize(1)}, errors.KindValidation},
		{"negative", X, y, []SplitOption{WithTestSize(-0.1)}, errors.KindValidation},
		{"no train rows", X, y, []SplitOption{WithTestSize(0.9)}, errors.KindValidation},
		{"length mismatch", X, mat.NewVecDense(4, nil), nil, errors.KindInternal},
		{"nil X", nil, y, nil, errors.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TrainTestSplit(tt.X, tt.y, tt.opts...)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
		})
	}
}

func TestPermutation(t *testing.T) {
	assert.Equal(t, Permutation(12, 42), Permutation(12, 42))
	assert.Len(t, Permutation(12, 1), 12)
	assert.Equal(t, 3, TestCount(11, 0.2))
}

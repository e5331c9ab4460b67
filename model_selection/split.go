// Package model_selection partitions prepared features into train and test sets.
package model_selection

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Defaults used when no option overrides them.
const (
	DefaultTestSize    = 0.2
	DefaultRandomState = 42
)

// Split is an immutable pairing of train and test partitions.
// TrainIndex and TestIndex hold the source row of each partition row.
type Split struct {
	XTrain *mat.Dense
	XTest  *mat.Dense
	YTrain *mat.VecDense
	YTest  *mat.VecDense

	TrainIndex []int
	TestIndex  []int
}

type splitConfig struct {
	testSize    float64
	randomState int64
}

// SplitOption configures TrainTestSplit.
type SplitOption func(*splitConfig)

// WithTestSize sets the fraction of rows assigned to the test partition.
func WithTestSize(f float64) SplitOption {
	return func(c *splitConfig) {
		c.testSize = f
	}
}

// WithRandomState sets the seed of the shuffle.
func WithRandomState(seed int64) SplitOption {
	return func(c *splitConfig) {
		c.randomState = seed
	}
}

// TestCount returns the number of test rows for n samples: ceil(testSize*n).
func TestCount(n int, testSize float64) int {
	return int(math.Ceil(testSize * float64(n)))
}

// Permutation returns the seeded row permutation used by TrainTestSplit.
// The same seed and n always yield the same permutation.
func Permutation(n int, seed int64) []int {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	return rng.Perm(n)
}

// TrainTestSplit shuffles the rows of X and y with a seeded generator and
// assigns the first ceil(testSize*n) shuffled rows to the test partition.
// Every row lands in exactly one partition. No stratification is applied.
func TrainTestSplit(X *mat.Dense, y *mat.VecDense, opts ...SplitOption) (*Split, error) {
	cfg := &splitConfig{
		testSize:    DefaultTestSize,
		randomState: DefaultRandomState,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if X == nil || y == nil || X.IsEmpty() || y.IsEmpty() {
		return nil, errors.NewModelError("TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	n, cols := X.Dims()
	if y.Len() != n {
		return nil, errors.NewDimensionError("TrainTestSplit", n, y.Len(), 0)
	}
	if math.IsNaN(cfg.testSize) || cfg.testSize <= 0 || cfg.testSize >= 1 {
		return nil, errors.NewValidationError("test_size", "must be in the open interval (0, 1)", cfg.testSize)
	}

	nTest := TestCount(n, cfg.testSize)
	nTrain := n - nTest
	if nTest < 1 || nTrain < 1 {
		return nil, errors.NewValidationError("test_size",
			"leaves an empty train or test partition for the given number of samples", n)
	}

	perm := Permutation(n, cfg.randomState)
	testIdx := append([]int(nil), perm[:nTest]...)
	trainIdx := append([]int(nil), perm[nTest:]...)

	s := &Split{
		XTrain:     mat.NewDense(nTrain, cols, nil),
		XTest:      mat.NewDense(nTest, cols, nil),
		YTrain:     mat.NewVecDense(nTrain, nil),
		YTest:      mat.NewVecDense(nTest, nil),
		TrainIndex: trainIdx,
		TestIndex:  testIdx,
	}
	for r, i := range trainIdx {
		s.XTrain.SetRow(r, X.RawRowView(i))
		s.YTrain.SetVec(r, y.AtVec(i))
	}
	for r, i := range testIdx {
		s.XTest.SetRow(r, X.RawRowView(i))
		s.YTest.SetVec(r, y.AtVec(i))
	}
	return s, nil
}

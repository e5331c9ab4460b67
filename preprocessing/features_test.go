package preprocessing

import (
	"testing"

	"github.com/YuminosukeSato/scorecast/dataset"
	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func studentTable() *dataset.Table {
	return dataset.NewTable(
		[]string{"hours_studied", "exam_difficulty", "score"},
		[][]string{
			{"1.5", "Easy", "55"},
			{"3", "Medium", "62.5"},
			{"4", "Hard", "58"},
			{" 6 ", "Medium", "80"},
		},
	)
}

func TestPrepareFeaturesAndTarget(t *testing.T) {
	tbl := studentTable()

	feats, y, err := PrepareFeaturesAndTarget(tbl)
	require.NoError(t, err)

	assert.Equal(t, []string{"hours_studied", "difficulty_Easy", "difficulty_Medium", "difficulty_Hard"}, feats.Names)
	assert.Equal(t, 4, feats.NumSamples())
	assert.Equal(t, 0, feats.Dropped)
	assert.Equal(t, []int{0, 1, 2, 3}, feats.RowIndex)

	want := mat.NewDense(4, 4, []float64{
		1.5, 1, 0, 0,
		3, 0, 1, 0,
		4, 0, 0, 1,
		6, 0, 1, 0,
	})
	assert.True(t, mat.Equal(want, feats.X))
	assert.Equal(t, []float64{55, 62.5, 58, 80}, mat.Col(nil, 0, y))
}

func TestPrepareExactlyOneIndicatorPerValidRow(t *testing.T) {
	feats, _, err := PrepareFeaturesAndTarget(studentTable())
	require.NoError(t, err)

	for i := 0; i < feats.NumSamples(); i++ {
		sum := feats.X.At(i, 1) + feats.X.At(i, 2) + feats.X.At(i, 3)
		assert.Equal(t, 1.0, sum, "row %d", i)
	}
}

func TestPrepareDoesNotMutateInput(t *testing.T) {
	tbl := studentTable()
	before := tbl.Clone()

	_, _, err := PrepareFeaturesAndTarget(tbl)
	require.NoError(t, err)

	assert.Equal(t, before.Columns(), tbl.Columns())
	for i := 0; i < tbl.NumRows(); i++ {
		assert.Equal(t, before.Row(i), tbl.Row(i))
	}
}

func TestPrepareDropsUnparseableRows(t *testing.T) {
	tbl := dataset.NewTable(
		[]string{"hours_studied", "exam_difficulty", "score"},
		[][]string{
			{"2", "Easy", "60"},
			{"abc", "Medium", "70"},
			{"3", "Hard", ""},
			{"NaN", "Hard", "50"},
			{"5", "Medium", "75"},
		},
	)

	feats, y, err := PrepareFeaturesAndTarget(tbl)
	require.NoError(t, err)

	assert.Equal(t, 3, feats.Dropped)
	assert.Equal(t, []int{0, 4}, feats.RowIndex)
	assert.Equal(t, []float64{60, 75}, mat.Col(nil, 0, y))
}

func TestPrepareUnknownDifficultyKeepsRowWithZeroIndicators(t *testing.T) {
	tbl := dataset.NewTable(
		[]string{"hours_studied", "exam_difficulty", "score"},
		[][]string{{"2", "Brutal", "40"}, {"3", " Easy", "45"}},
	)

	feats, _, err := PrepareFeaturesAndTarget(tbl)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 0, 0}, mat.Row(nil, 0, feats.X))
	assert.Equal(t, []float64{3, 0, 0, 0}, mat.Row(nil, 1, feats.X))
}

func TestPrepareAllRowsInvalid(t *testing.T) {
	tbl := dataset.NewTable(
		[]string{"hours_studied", "exam_difficulty", "score"},
		[][]string{{"x", "Easy", "1"}, {"2", "Easy", "y"}},
	)

	_, _, err := PrepareFeaturesAndTarget(tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyDataset))
	assert.Equal(t, errors.KindEmpty, errors.KindOf(err))
}

func TestPrepareMissingColumns(t *testing.T) {
	tbl := dataset.NewTable([]string{"hours_studied", "grade"}, [][]string{{"1", "A"}})

	_, _, err := PrepareFeaturesAndTarget(tbl)
	require.Error(t, err)

	var mc *errors.MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, []string{"exam_difficulty", "score"}, mc.Missing)
	assert.Equal(t, []string{"hours_studied", "grade"}, mc.Available)
	assert.Equal(t, errors.KindSchema, errors.KindOf(err))
}

func TestPrepareCustomSelection(t *testing.T) {
	tbl := studentTable()

	feats, y, err := PrepareFeaturesAndTarget(tbl,
		WithFeatureColumns("hours_studied"),
		WithTargetColumn("score"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"hours_studied"}, feats.Names)
	assert.Equal(t, 4, y.Len())

	// exam_difficulty only
	feats, _, err = PrepareFeaturesAndTarget(tbl, WithFeatureColumns("exam_difficulty"))
	require.NoError(t, err)
	assert.Equal(t, []string{"difficulty_Easy", "difficulty_Medium", "difficulty_Hard"}, feats.Names)
}

func TestOneHotEncoder(t *testing.T) {
	enc := NewDifficultyEncoder()

	tests := []struct {
		value string
		want  []float64
		known bool
	}{
		{"Easy", []float64{1, 0, 0}, true},
		{"Medium", []float64{0, 1, 0}, true},
		{" Hard ", []float64{0, 0, 0}, false},
		{"hard", []float64{0, 0, 0}, false},
		{"", []float64{0, 0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, enc.EncodeValue(tt.value))
			assert.Equal(t, tt.known, enc.Known(tt.value))
		})
	}

	assert.Equal(t, map[string]float64{
		"difficulty_Easy":   0,
		"difficulty_Medium": 1,
		"difficulty_Hard":   0,
	}, enc.EncodeMap("Medium"))
}

func TestParseNumber(t *testing.T) {
	v, err := ParseNumber(" 7.25 ")
	require.NoError(t, err)
	assert.Equal(t, 7.25, v)

	for _, s := range []string{"abc", "", "NaN", "Inf", "-inf"} {
		_, err := ParseNumber(s)
		assert.Error(t, err, s)
	}

	_, err = ParseNumber("NaN")
	assert.EqualError(t, err, `non-finite value "NaN"`)
	_, err = ParseNumber("abc")
	assert.ErrorContains(t, err, `parse number "abc"`)
}

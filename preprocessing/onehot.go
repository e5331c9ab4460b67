package preprocessing

// DifficultyCategories are the fixed exam difficulty levels, in output order.
var DifficultyCategories = []string{"Easy", "Medium", "Hard"}

// OneHotEncoder expands a categorical column into 0/1 indicator columns
// over a fixed category list. Values outside the list produce all-zero
// indicators.
type OneHotEncoder struct {
	// Prefix は出力列名の接頭辞（例: "difficulty"）
	Prefix string

	// Categories は固定のカテゴリ一覧（出力列の順序）
	Categories []string
}

// NewOneHotEncoder は新しいOneHotEncoderを作成する
//
// 使用例:
//
//	enc := preprocessing.NewOneHotEncoder("difficulty", preprocessing.DifficultyCategories)
//	enc.FeatureNames() // ["difficulty_Easy", "difficulty_Medium", "difficulty_Hard"]
func NewOneHotEncoder(prefix string, categories []string) *OneHotEncoder {
	return &OneHotEncoder{
		Prefix:     prefix,
		Categories: append([]string(nil), categories...),
	}
}

// NewDifficultyEncoder returns the encoder for the exam_difficulty column.
func NewDifficultyEncoder() *OneHotEncoder {
	return NewOneHotEncoder("difficulty", DifficultyCategories)
}

// FeatureNames は出力列名を返す
func (e *OneHotEncoder) FeatureNames() []string {
	names := make([]string, len(e.Categories))
	for i, c := range e.Categories {
		names[i] = e.Prefix + "_" + c
	}
	return names
}

// Index returns the category position of value, or -1 if it is unknown.
// Matching is exact: case and surrounding whitespace both count.
func (e *OneHotEncoder) Index(value string) int {
	for i, c := range e.Categories {
		if c == value {
			return i
		}
	}
	return -1
}

// Known reports whether value is one of the categories.
func (e *OneHotEncoder) Known(value string) bool {
	return e.Index(value) >= 0
}

// EncodeValue は1つの値をインジケータに変換する
func (e *OneHotEncoder) EncodeValue(value string) []float64 {
	out := make([]float64, len(e.Categories))
	if i := e.Index(value); i >= 0 {
		out[i] = 1.0
	}
	return out
}

// EncodeMap returns the indicators of value keyed by feature name.
func (e *OneHotEncoder) EncodeMap(value string) map[string]float64 {
	names := e.FeatureNames()
	vals := e.EncodeValue(value)
	out := make(map[string]float64, len(names))
	for i, n := range names {
		out[n] = vals[i]
	}
	return out
}

package errors

import "net/http"

// Kind はエラーの分類です。HTTPステータスとCLIの終了コードはこの分類から決まります。
type Kind int

const (
	// KindInternal は分類できないエラーです。
	KindInternal Kind = iota
	// KindNotFound はデータセット・モデル・設定ファイルが見つからないことを示します。
	KindNotFound
	// KindValidation は利用者の入力が不正であることを示します。
	KindValidation
	// KindSchema は必要な列が欠けていることを示します。
	KindSchema
	// KindEmpty は有効な行が1つも無いことを示します。
	KindEmpty
)

var kindNames = map[Kind]string{
	KindInternal:   "internal",
	KindNotFound:   "not_found",
	KindValidation: "validation",
	KindSchema:     "schema",
	KindEmpty:      "empty",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var httpStatusByKind = map[Kind]int{
	KindInternal:   http.StatusInternalServerError,
	KindNotFound:   http.StatusInternalServerError,
	KindValidation: http.StatusBadRequest,
	KindSchema:     http.StatusInternalServerError,
	KindEmpty:      http.StatusInternalServerError,
}

var exitCodeByKind = map[Kind]int{
	KindInternal:   1,
	KindValidation: 2,
	KindNotFound:   3,
	KindSchema:     4,
	KindEmpty:      5,
}

// KindOf はエラーチェーンを辿って分類を返します。
// 呼び出し側で nil を先に判定してください（nil は KindInternal として扱われます）。
func KindOf(err error) Kind {
	var (
		notFound   *NotFoundError
		missing    *MissingColumnError
		validation *ValidationError
	)
	switch {
	case err == nil:
		return KindInternal
	case As(err, &validation):
		return KindValidation
	case As(err, &notFound):
		return KindNotFound
	case As(err, &missing):
		return KindSchema
	case Is(err, ErrEmptyDataset):
		return KindEmpty
	}
	return KindInternal
}

// HTTPStatus はエラー分類に対応するHTTPステータスを返します。
func HTTPStatus(k Kind) int {
	if s, ok := httpStatusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ExitCode はエラー分類に対応するプロセス終了コードを返します。
func ExitCode(k Kind) int {
	if c, ok := exitCodeByKind[k]; ok {
		return c
	}
	return 1
}

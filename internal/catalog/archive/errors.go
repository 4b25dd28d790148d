package archive

import "errors"

var (
	// ErrEmptyFile は展開したエントリが空の場合のエラー
	ErrEmptyFile = errors.New("ファイルサイズが0です")

	// ErrExtractFailed はファイルの展開に失敗した場合のエラー
	ErrExtractFailed = errors.New("ファイルの展開に失敗しました")
)

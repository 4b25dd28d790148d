package app

import "errors"

var (
	// ErrUnsupportedPath は判定対象ではないパスの場合のエラー
	ErrUnsupportedPath = errors.New("判定対象ではないパスです")

	// ErrReadFile はファイルの読み込みに失敗した場合のエラー
	ErrReadFile = errors.New("ファイルの読み込みに失敗しました")

	// ErrNotBinarySummary は画像を持たない形式の識別子が指定された場合のエラー
	ErrNotBinarySummary = errors.New(".wsmではないため画像を読み込めません")

	// ErrNoImage は埋め込み画像が無い場合のエラー
	ErrNoImage = errors.New("画像データがありません")

	// ErrWatch はフォルダの監視に失敗した場合のエラー
	ErrWatch = errors.New("フォルダの監視に失敗しました")
)

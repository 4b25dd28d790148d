package fileutil

import "errors"

var (
	// ErrReadDirectory はディレクトリ内のファイル一覧を取得できない場合のエラー
	ErrReadDirectory = errors.New("ディレクトリ内のファイル一覧を取得できませんでした")

	// ErrNotDirectory はスキャン対象がディレクトリではない場合のエラー
	ErrNotDirectory = errors.New("スキャン対象がディレクトリではありません")

	// ErrInvalidPattern は除外パターンが不正な場合のエラー
	ErrInvalidPattern = errors.New("除外パターンが不正です")
)

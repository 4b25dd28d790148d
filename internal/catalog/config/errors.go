package config

import "errors"

var (
	// ErrResolveConfigDir は設定ディレクトリを決められない場合のエラー
	ErrResolveConfigDir = errors.New("設定ディレクトリを取得できませんでした")

	// ErrOpenConfig は設定ファイルを開けない場合のエラー
	ErrOpenConfig = errors.New("設定ファイルを開けませんでした")

	// ErrParseConfig は設定ファイルの解析に失敗した場合のエラー
	ErrParseConfig = errors.New("設定ファイルの解析に失敗しました")

	// ErrInvalidConfig は設定値が不正な場合のエラー
	ErrInvalidConfig = errors.New("設定値が不正です")

	// ErrConfigExists は設定ファイルが既に存在する場合のエラー
	ErrConfigExists = errors.New("設定ファイルが既に存在します")

	// ErrWriteConfig は設定ファイルの書き込みに失敗した場合のエラー
	ErrWriteConfig = errors.New("設定ファイルの書き込みに失敗しました")
)

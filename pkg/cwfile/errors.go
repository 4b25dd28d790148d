package cwfile

import "errors"

var (
	// ErrTruncatedRecord はフィールドが宣言する長さよりもストリームが短い場合のエラー
	ErrTruncatedRecord = errors.New("レコードが途中で切れています")

	// ErrNotSeekable はシークできないストリームで残りのデータを読もうとした場合のエラー
	ErrNotSeekable = errors.New("シークできないストリームです")
)

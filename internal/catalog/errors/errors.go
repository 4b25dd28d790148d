// Package errors はカスタムエラータイプを提供します
package errors

import (
	"errors"
	"fmt"

	"github.com/shiroemons/go-cwcatalog/pkg/cwfile"
	"github.com/shiroemons/go-cwcatalog/pkg/textenc"
	"github.com/shiroemons/go-cwcatalog/pkg/zipname"
)

// 1ファイル単位で捕捉されるエラー
var (
	// ErrTruncatedRecord は.wsmのデータが宣言された長さより短い場合のエラー
	ErrTruncatedRecord = cwfile.ErrTruncatedRecord

	// ErrUnsupportedEncoding は文字コードが解決できない場合のエラー
	ErrUnsupportedEncoding = textenc.ErrUnsupportedEncoding

	// ErrNotAnArchive はアーカイブの拡張子なのにzipとして開けない場合のエラー
	ErrNotAnArchive = zipname.ErrNotZip

	// ErrMissingManifestEntry はアーカイブやフォルダに概要ファイルが無い場合のエラー
	ErrMissingManifestEntry = errors.New("概要ファイルが見つかりません")

	// ErrEncryptedEntry はエントリにパスワードが必要な場合のエラー
	ErrEncryptedEntry = errors.New("暗号化されたエントリです")

	// ErrXMLMalformed はSummary.xmlの解析に失敗した場合のエラー
	ErrXMLMalformed = errors.New("XMLの解析に失敗しました")

	// ErrNoRecord はレコードを作らずにスキップした場合のエラー
	ErrNoRecord = errors.New("レコードを作成できませんでした")
)

// ArchiveError はアーカイブ関連のエラー
type ArchiveError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ArchiveError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// NewArchiveError は新しいArchiveErrorを作成します
func NewArchiveError(op, path string, err error) *ArchiveError {
	return &ArchiveError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// ParseError は解析関連のエラー
type ParseError struct {
	File string // ファイル名
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ParseError) Error() string {
	return fmt.Sprintf("%sの解析エラー: %v", e.File, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError は新しいParseErrorを作成します
func NewParseError(file string, err error) *ParseError {
	return &ParseError{
		File: file,
		Err:  err,
	}
}

// IsSkip はレコードを作らずにスキップしたことを表すエラーかどうかを返します
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoRecord)
}

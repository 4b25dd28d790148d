// Package textenc はXMLやテキストのバイト列の文字コードを判別して変換します。
//
// 判別の優先順位:
//   - BOM（UTF-8、UTF-16LE、UTF-16BE）
//   - 先頭100バイト中の encoding="…" 宣言（無ければUTF-8）
//   - Shift-JIS
//   - 不正なシーケンスを置換文字にしたUTF-8（必ず成功します）
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// declarationScanSize は encoding 宣言を探す先頭のバイト数
const declarationScanSize = 100

// 変換に使用した文字コードの名前
const (
	NameUTF8BOM     = "utf-8-sig"
	NameUTF16LE     = "utf-16le"
	NameUTF16BE     = "utf-16be"
	NameUTF8        = "utf-8"
	NameShiftJIS    = "shift_jis"
	NameUTF8Replace = "utf-8-replace"
)

var (
	// ErrUnsupportedEncoding は宣言された文字コードが解決できない場合のエラー
	ErrUnsupportedEncoding = errors.New("サポートされていない文字コードです")

	// ErrInvalidSequence は厳密な変換で不正なバイト列が見つかった場合のエラー
	ErrInvalidSequence = errors.New("不正なバイト列です")
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}

	declarationPattern = regexp.MustCompile(`encoding=["']([^"']+)["']`)
)

// Result は変換結果を表します
type Result struct {
	Text     string
	Encoding string // 実際に使用した文字コード
	Declared string // XML宣言に書かれていた文字コード（無ければ空）
}

// Decode はバイト列を文字列に変換します。このパスは失敗しません。
func Decode(raw []byte) Result {
	if text, name, ok := decodeBOM(raw); ok {
		return Result{Text: text, Encoding: name}
	}

	declared := DeclaredEncoding(raw)
	name := declared
	if name == "" {
		name = NameUTF8
	}
	if text, err := DecodeStrict(raw, name); err == nil {
		return Result{Text: text, Encoding: canonicalName(name), Declared: declared}
	}

	if text, err := DecodeStrict(raw, NameShiftJIS); err == nil {
		return Result{Text: text, Encoding: NameShiftJIS, Declared: declared}
	}

	return Result{
		Text:     strings.ToValidUTF8(string(raw), string(utf8.RuneError)),
		Encoding: NameUTF8Replace,
		Declared: declared,
	}
}

// decodeBOM はBOMで文字コードが確定する場合に変換します
func decodeBOM(raw []byte) (string, string, bool) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return strings.ToValidUTF8(string(raw[len(bomUTF8):]), string(utf8.RuneError)), NameUTF8BOM, true
	case bytes.HasPrefix(raw, bomUTF16LE):
		text, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(raw)
		if err != nil {
			return "", "", false
		}
		return string(text), NameUTF16LE, true
	case bytes.HasPrefix(raw, bomUTF16BE):
		text, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(raw)
		if err != nil {
			return "", "", false
		}
		return string(text), NameUTF16BE, true
	}
	return "", "", false
}

// DeclaredEncoding は先頭100バイトから encoding="…" 宣言を探します。
// 非ASCIIバイトは無視します。
func DeclaredEncoding(raw []byte) string {
	head := raw
	if len(head) > declarationScanSize {
		head = head[:declarationScanSize]
	}
	ascii := make([]byte, 0, len(head))
	for _, b := range head {
		if b < utf8.RuneSelf {
			ascii = append(ascii, b)
		}
	}
	m := declarationPattern.FindSubmatch(ascii)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(string(m[1]))
}

// Lookup は文字コード名からエンコーディングを解決します
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameUTF8, "utf8":
		return unicode.UTF8, nil
	case NameShiftJIS, "shift-jis", "sjis", "cp932", "windows-31j", "ms932":
		return japanese.ShiftJIS, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
	}
	return enc, nil
}

// DecodeStrict は指定した文字コードで変換し、不正なバイト列があればエラーを返します
func DecodeStrict(raw []byte, name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	if enc == unicode.UTF8 {
		if !utf8.Valid(raw) {
			return "", ErrInvalidSequence
		}
		return string(raw), nil
	}
	return DecodeWith(enc, raw)
}

// DecodeWith は指定したエンコーディングで厳密に変換します。
// デコーダが置換文字を出力した場合は不正なバイト列とみなします。
func DecodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSequence, err)
	}
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", ErrInvalidSequence
	}
	return string(decoded), nil
}

func canonicalName(name string) string {
	enc, err := Lookup(name)
	if err != nil {
		return name
	}
	if enc == unicode.UTF8 {
		return NameUTF8
	}
	if enc == japanese.ShiftJIS {
		return NameShiftJIS
	}
	if canonical, err := htmlindex.Name(enc); err == nil {
		return canonical
	}
	return name
}

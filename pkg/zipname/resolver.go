// Package zipname はzipアーカイブのエントリ名に使われた文字コードを推定して表示名に変換します。
//
// UTF-8フラグを持たないzipのエントリ名は作成環境の文字コードのまま格納されています。
// 先頭エントリの生のバイト列を日本語の各文字コードで試し、かなや漢字が現れたものを採用します。
package zipname

import (
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zip"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"

	"github.com/shiroemons/go-cwcatalog/pkg/textenc"
)

// flagUTF8 は汎用ビットフラグのUTF-8ビット（bit 11）
const flagUTF8 = 0x800

// Encoding は名前付きの文字コード
type Encoding struct {
	Name     string
	Encoding encoding.Encoding
}

var (
	// UTF8 はUTF-8フラグ付きのアーカイブで使用します
	UTF8 = Encoding{Name: "utf-8", Encoding: unicode.UTF8}

	// CP437 はzip形式の既定の文字コード
	CP437 = Encoding{Name: "cp437", Encoding: charmap.CodePage437}

	// ShiftJIS、EUCJP、ISO2022JP は推定に使う候補
	ShiftJIS  = Encoding{Name: "shift_jis", Encoding: japanese.ShiftJIS}
	EUCJP     = Encoding{Name: "euc-jp", Encoding: japanese.EUCJP}
	ISO2022JP = Encoding{Name: "iso-2022-jp", Encoding: japanese.ISO2022JP}
)

// Candidates は推定を試す順序
var Candidates = []Encoding{ShiftJIS, EUCJP, ISO2022JP}

// retryOrder は検証に失敗した場合に試す順序
var retryOrder = []Encoding{ShiftJIS, EUCJP, ISO2022JP, UTF8}

// resolvedSuffixes は表示名の変換対象になる拡張子
var resolvedSuffixes = []string{".wsm", ".xml", ".txt"}

// Resolve はエントリ一覧からエントリ名の文字コードを推定します
func Resolve(files []*zip.File) Encoding {
	for _, f := range files {
		if f.Flags&flagUTF8 != 0 {
			return UTF8
		}
	}
	if len(files) == 0 {
		return CP437
	}

	raw := []byte(files[0].Name)
	for _, c := range Candidates {
		text, err := textenc.DecodeWith(c.Encoding, raw)
		if err != nil {
			continue
		}
		if containsJapanese(text) {
			return c
		}
	}
	return CP437
}

// DisplayName は生のエントリ名を表示名に変換します。
// 対象の拡張子以外と、どの文字コードでも検証に通らない名前は既定の文字コードでそのまま読みます。
func DisplayName(enc Encoding, raw string) string {
	if !HasResolvedSuffix(raw) {
		return passthrough(raw)
	}

	if name, ok := decodeValid(enc, raw); ok {
		return name
	}
	for _, c := range retryOrder {
		if c.Name == enc.Name {
			continue
		}
		if name, ok := decodeValid(c, raw); ok {
			return name
		}
	}
	return passthrough(raw)
}

// HasResolvedSuffix は表示名の変換対象となる拡張子かどうかを返します
func HasResolvedSuffix(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range resolvedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func decodeValid(enc Encoding, raw string) (string, bool) {
	var name string
	if enc.Name == UTF8.Name {
		if !utf8.ValidString(raw) {
			return "", false
		}
		name = raw
	} else {
		decoded, err := enc.Encoding.NewDecoder().String(raw)
		if err != nil {
			return "", false
		}
		name = decoded
	}
	if !IsValidName(name) {
		return "", false
	}
	return name, true
}

// passthrough はUTF-8として読めない名前を既定の文字コードで読み替えます
func passthrough(raw string) string {
	if utf8.ValidString(raw) {
		return raw
	}
	name, err := CP437.Encoding.NewDecoder().String(raw)
	if err != nil {
		return raw
	}
	return name
}

func containsJapanese(s string) bool {
	for _, r := range s {
		if isKana(r) || isIdeograph(r) {
			return true
		}
	}
	return false
}

// IsValidName は名前が印字可能なASCIIと日本語の文字だけで構成されているかを返します
func IsValidName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 0x20 && r <= 0x7E:
		case r >= 0x3000 && r <= 0x303F: // 全角の句読点
		case isKana(r):
		case r >= 0xFF00 && r <= 0xFFEF: // 半角・全角形
		case isIdeograph(r):
		default:
			return false
		}
	}
	return true
}

func isKana(r rune) bool {
	return r >= 0x3040 && r <= 0x30FF
}

func isIdeograph(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

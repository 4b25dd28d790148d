package textenc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"

	"github.com/shiroemons/go-cwcatalog/pkg/textenc"
)

func mustEncode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func TestDecode(t *testing.T) {
	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("<Property/>"))
	require.NoError(t, err)
	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("名前"))
	require.NoError(t, err)
	eucjp, err := japanese.EUCJP.NewEncoder().Bytes([]byte(`<?xml version="1.0" encoding="EUC-JP"?><Name>宿</Name>`))
	require.NoError(t, err)

	tests := []struct {
		name         string
		input        []byte
		wantText     string
		wantEncoding string
		wantDeclared string
	}{
		{
			name:         "UTF-8 BOMは除去される",
			input:        append([]byte{0xEF, 0xBB, 0xBF}, "<Name>冒険</Name>"...),
			wantText:     "<Name>冒険</Name>",
			wantEncoding: textenc.NameUTF8BOM,
		},
		{
			name:         "UTF-16LE BOM",
			input:        utf16le,
			wantText:     "<Property/>",
			wantEncoding: textenc.NameUTF16LE,
		},
		{
			name:         "UTF-16BE BOM",
			input:        utf16be,
			wantText:     "名前",
			wantEncoding: textenc.NameUTF16BE,
		},
		{
			name:         "宣言なしのUTF-8",
			input:        []byte("<Name>宿屋</Name>"),
			wantText:     "<Name>宿屋</Name>",
			wantEncoding: textenc.NameUTF8,
		},
		{
			name:         "Shift_JIS宣言",
			input:        mustEncode(t, `<?xml version="1.0" encoding="Shift_JIS"?><Name>宿</Name>`),
			wantText:     `<?xml version="1.0" encoding="Shift_JIS"?><Name>宿</Name>`,
			wantEncoding: textenc.NameShiftJIS,
			wantDeclared: "Shift_JIS",
		},
		{
			name:         "EUC-JP宣言",
			input:        eucjp,
			wantText:     `<?xml version="1.0" encoding="EUC-JP"?><Name>宿</Name>`,
			wantEncoding: "euc-jp",
			wantDeclared: "EUC-JP",
		},
		{
			name:         "UTF-8として不正ならShift-JIS",
			input:        mustEncode(t, "<Name>ゴブリン</Name>"),
			wantText:     "<Name>ゴブリン</Name>",
			wantEncoding: textenc.NameShiftJIS,
		},
		{
			name:         "未知の宣言はShift-JISにフォールバック",
			input:        []byte(`<?xml encoding='x-unknown'?><a/>`),
			wantText:     `<?xml encoding='x-unknown'?><a/>`,
			wantEncoding: textenc.NameShiftJIS,
			wantDeclared: "x-unknown",
		},
		{
			name:         "どれにも合わなければ置換文字",
			input:        []byte{'a', 0x81},
			wantText:     "a�",
			wantEncoding: textenc.NameUTF8Replace,
		},
		{
			name:         "空",
			input:        nil,
			wantText:     "",
			wantEncoding: textenc.NameUTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textenc.Decode(tt.input)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantEncoding, got.Encoding)
			assert.Equal(t, tt.wantDeclared, got.Declared)
		})
	}
}

func TestDeclaredEncoding(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"ダブルクォート", []byte(`<?xml version="1.0" encoding="UTF-8"?>`), "UTF-8"},
		{"シングルクォート", []byte(`<?xml version='1.0' encoding='cp932'?>`), "cp932"},
		{"宣言なし", []byte(`<Property/>`), ""},
		{"非ASCIIは無視", append([]byte{0x82, 0xA0}, `encoding="Shift_JIS"`...), "Shift_JIS"},
		{"100バイトより後ろは見ない", append(make([]byte, 100), `encoding="utf-8"`...), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textenc.DeclaredEncoding(tt.input))
		})
	}
}

func TestDecodeStrict(t *testing.T) {
	t.Run("未知の文字コード", func(t *testing.T) {
		_, err := textenc.DecodeStrict([]byte("abc"), "no-such-encoding")
		assert.ErrorIs(t, err, textenc.ErrUnsupportedEncoding)
	})

	t.Run("UTF-8として不正", func(t *testing.T) {
		_, err := textenc.DecodeStrict([]byte{0xFF, 0xFE, 0x00}, "utf-8")
		assert.ErrorIs(t, err, textenc.ErrInvalidSequence)
	})

	t.Run("Shift-JISとして不正", func(t *testing.T) {
		_, err := textenc.DecodeStrict([]byte{0x81, 0x20}, "sjis")
		assert.ErrorIs(t, err, textenc.ErrInvalidSequence)
	})

	t.Run("別名で解決", func(t *testing.T) {
		got, err := textenc.DecodeStrict(mustEncode(t, "宿"), "Windows-31J")
		require.NoError(t, err)
		assert.Equal(t, "宿", got)
	})
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  textenc.Language
	}{
		{"", textenc.LanguageUnknown},
		{"Goblin Cave", textenc.LanguageUnknown},
		{"ゴブリンの洞窟", textenc.LanguageJapanese},
		{"고블린 동굴", textenc.LanguageKorean},
		{"고블린のどうくつ", textenc.LanguageJapanese},
		{"고블린 동굴 ゴ", textenc.LanguageKorean},
		{"가나あア", textenc.LanguageUnknown},
		{"漢字のみ", textenc.LanguageJapanese},
		{"漢字", textenc.LanguageUnknown},
	}

	for _, test := range tests {
		result := textenc.DetectLanguage(test.input)
		if result != test.want {
			t.Errorf("DetectLanguage(%q) = %v; want %v", test.input, result, test.want)
		}
	}
}

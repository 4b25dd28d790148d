package zipname_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"

	"github.com/shiroemons/go-cwcatalog/pkg/zipname"
)

type testEntry struct {
	name      string
	data      string
	utf8      bool
	encrypted bool
}

func encodeName(t *testing.T, enc encoding.Encoding, s string) string {
	t.Helper()
	b, err := enc.NewEncoder().String(s)
	require.NoError(t, err)
	return b
}

func buildZip(t *testing.T, entries ...testEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		fh := &zip.FileHeader{Name: e.name, Method: zip.Store, NonUTF8: !e.utf8}
		if e.encrypted {
			fh.Flags |= 0x1
		}
		fw, err := w.CreateHeader(fh)
		require.NoError(t, err)
		_, err = fw.Write([]byte(e.data))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func openZip(t *testing.T, data []byte) *zipname.Archive {
	t.Helper()
	a, err := zipname.NewArchive(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return a
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		entries func(t *testing.T) []testEntry
		want    zipname.Encoding
	}{
		{
			name: "UTF-8フラグ",
			entries: func(t *testing.T) []testEntry {
				return []testEntry{
					{name: "readme.txt"},
					{name: "シナリオ/Summary.xml", utf8: true},
				}
			},
			want: zipname.UTF8,
		},
		{
			name: "Shift-JIS",
			entries: func(t *testing.T) []testEntry {
				return []testEntry{{name: encodeName(t, japanese.ShiftJIS, "ゴブリンの洞窟/Summary.wsm")}}
			},
			want: zipname.ShiftJIS,
		},
		{
			name: "EUC-JP",
			entries: func(t *testing.T) []testEntry {
				return []testEntry{{name: encodeName(t, japanese.EUCJP, "宿/Summary.wsm")}}
			},
			want: zipname.EUCJP,
		},
		{
			name: "ISO-2022-JP",
			entries: func(t *testing.T) []testEntry {
				return []testEntry{{name: encodeName(t, japanese.ISO2022JP, "宿屋/Summary.wsm")}}
			},
			want: zipname.ISO2022JP,
		},
		{
			name: "ASCIIのみは既定の文字コード",
			entries: func(t *testing.T) []testEntry {
				return []testEntry{{name: "scenario/Summary.wsm"}}
			},
			want: zipname.CP437,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := openZip(t, buildZip(t, tt.entries(t)...))
			got := a.Encoding()
			assert.Equal(t, tt.want.Name, got.Name)
		})
	}
}

func TestResolve_Empty(t *testing.T) {
	assert.Equal(t, zipname.CP437.Name, zipname.Resolve(nil).Name)
}

func TestDisplayName(t *testing.T) {
	sjis := encodeName(t, japanese.ShiftJIS, "冒険/Summary.wsm")
	jis := encodeName(t, japanese.ISO2022JP, "冒険/Summary.xml")

	tests := []struct {
		name string
		enc  zipname.Encoding
		raw  string
		want string
	}{
		{"推定した文字コードで変換", zipname.ShiftJIS, sjis, "冒険/Summary.wsm"},
		{"推定を誤っても他の候補で変換", zipname.ShiftJIS, jis, "冒険/Summary.xml"},
		{"既定の文字コードから候補で変換", zipname.CP437, sjis, "冒険/Summary.wsm"},
		{"ASCIIはそのまま", zipname.CP437, "Summary.xml", "Summary.xml"},
		{"UTF-8はそのまま", zipname.UTF8, "シナリオ/summary.txt", "シナリオ/summary.txt"},
		{"対象外の拡張子は変換しない", zipname.ShiftJIS, "\x82\xa0.bmp", "éá.bmp"},
		{"どれでも検証に通らなければ既定の文字コード", zipname.ShiftJIS, "\x01bad.txt", "\x01bad.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, zipname.DisplayName(tt.enc, tt.raw))
		})
	}
}

func TestIsValidName(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Summary.xml", true},
		{"ゴブリンの洞窟/Summary.wsm", true},
		{"ｺﾞﾌﾞﾘﾝ.txt", true},
		{"「宿」、。.txt", true},
		{"", false},
		{"tab\there", false},
		{"╔═╗.wsm", false},
		{"�.wsm", false},
		{"고블린.wsm", false},
	}

	for _, test := range tests {
		if got := zipname.IsValidName(test.input); got != test.want {
			t.Errorf("IsValidName(%q) = %v; want %v", test.input, got, test.want)
		}
	}
}

func TestArchive_Entries(t *testing.T) {
	name := encodeName(t, japanese.ShiftJIS, "洞窟/Summary.wsm")
	data := buildZip(t,
		testEntry{name: encodeName(t, japanese.ShiftJIS, "洞窟/")},
		testEntry{name: name, data: "wsm"},
		testEntry{name: "locked/summary.xml", data: "<x/>", encrypted: true},
	)
	a := openZip(t, data)

	entries := a.Entries()
	require.Len(t, entries, 2)

	assert.Equal(t, name, entries[0].RawName)
	assert.Equal(t, "洞窟/Summary.wsm", entries[0].DisplayName)
	assert.Equal(t, 1, entries[0].Index)
	assert.Equal(t, uint64(3), entries[0].Size)
	assert.False(t, entries[0].Encrypted)
	assert.True(t, entries[1].Encrypted)

	content, err := a.ReadEntry(entries[0])
	require.NoError(t, err)
	assert.Equal(t, "wsm", string(content))

	_, err = a.ReadEntry(zipname.Entry{Index: 99})
	assert.Error(t, err)
	assert.NoError(t, a.Close())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	t.Run("zipファイル", func(t *testing.T) {
		path := filepath.Join(dir, "ok.zip")
		require.NoError(t, os.WriteFile(path, buildZip(t, testEntry{name: "Summary.xml", data: "x"}), 0o644))

		a, err := zipname.Open(path)
		require.NoError(t, err)
		defer a.Close()
		assert.Len(t, a.Files(), 1)
	})

	t.Run("zipではない", func(t *testing.T) {
		path := filepath.Join(dir, "bad.wsn")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

		_, err := zipname.Open(path)
		assert.ErrorIs(t, err, zipname.ErrNotZip)
	})

	t.Run("存在しない", func(t *testing.T) {
		_, err := zipname.Open(filepath.Join(dir, "missing.zip"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

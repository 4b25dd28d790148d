// Package zipnametest はテスト用のzipアーカイブを作成します
package zipnametest

import (
	"bytes"
	"os"
	"testing"

	"github.com/klauspost/compress/zip"
)

// flagEncrypted は暗号化ビット
const flagEncrypted = 0x1

// Entry は作成するエントリ
type Entry struct {
	Name      string // 格納する生のバイト列
	Data      []byte
	UTF8      bool // UTF-8フラグを立てる
	Encrypted bool // 暗号化ビットだけを立てる（内容は暗号化しない）
}

// Build はエントリを無圧縮で格納したzipのバイト列を返します
func Build(t testing.TB, entries ...Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		fh := &zip.FileHeader{Name: e.Name, Method: zip.Store, NonUTF8: !e.UTF8}
		if e.Encrypted {
			fh.Flags |= flagEncrypted
		}
		fw, err := w.CreateHeader(fh)
		if err != nil {
			t.Fatalf("CreateHeader(%q): %v", e.Name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			t.Fatalf("Write(%q): %v", e.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

// Write はzipを作成して path に保存します
func Write(t testing.TB, path string, entries ...Entry) {
	t.Helper()
	if err := os.WriteFile(path, Build(t, entries...), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): %v", path, err)
	}
}

package zipname

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zip"
)

// flagEncrypted は暗号化ビット（bit 0）
const flagEncrypted = 0x1

// ErrNotZip はzipとして開けない場合のエラー
var ErrNotZip = errors.New("zip形式ではありません")

// Entry はアーカイブ内のエントリ
type Entry struct {
	RawName     string // 格納されている生のバイト列
	DisplayName string // 推定した文字コードで変換した名前
	Index       int    // Files() 内の位置
	Size        uint64 // 展開後のサイズ
	Encrypted   bool
}

// Archive は開いたzipアーカイブです。
// 推定した文字コードはこのハンドルだけが保持し、最初に必要になった時点で一度だけ計算します。
type Archive struct {
	reader *zip.Reader
	closer io.Closer

	once     sync.Once
	encoding Encoding
}

// Open はファイルをzipアーカイブとして開きます
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	a, err := newArchive(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	a.closer = f
	return a, nil
}

// NewArchive はメモリ上などのデータからアーカイブを作成します
func NewArchive(r io.ReaderAt, size int64) (*Archive, error) {
	return newArchive(r, size)
}

func newArchive(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("%w: %w", ErrNotZip, err)
	}
	return &Archive{reader: zr}, nil
}

// Close はアーカイブを閉じます
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Encoding はエントリ名の文字コードを返します
func (a *Archive) Encoding() Encoding {
	a.once.Do(func() {
		a.encoding = Resolve(a.reader.File)
	})
	return a.encoding
}

// DisplayName はこのアーカイブの文字コードで生のエントリ名を変換します
func (a *Archive) DisplayName(raw string) string {
	return DisplayName(a.Encoding(), raw)
}

// Files はzipのエントリを返します
func (a *Archive) Files() []*zip.File {
	return a.reader.File
}

// Entries はディレクトリを除くエントリを表示名付きで返します
func (a *Archive) Entries() []Entry {
	entries := make([]Entry, 0, len(a.reader.File))
	for i, f := range a.reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, Entry{
			RawName:     f.Name,
			DisplayName: a.DisplayName(f.Name),
			Index:       i,
			Size:        f.UncompressedSize64,
			Encrypted:   f.Flags&flagEncrypted != 0,
		})
	}
	return entries
}

// OpenEntry はエントリの内容を読み込むReaderを返します
func (a *Archive) OpenEntry(e Entry) (io.ReadCloser, error) {
	if e.Index < 0 || e.Index >= len(a.reader.File) {
		return nil, fmt.Errorf("エントリの位置が範囲外です: %d", e.Index)
	}
	return a.reader.File[e.Index].Open()
}

// ReadEntry はエントリの内容をすべて読み込みます
func (a *Archive) ReadEntry(e Entry) ([]byte, error) {
	rc, err := a.OpenEntry(e)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

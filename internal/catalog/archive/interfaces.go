package archive

import (
	"fmt"
	"io"

	"github.com/shiroemons/go-cwcatalog/pkg/zipname"
)

// maxPrealloc は展開前に確保するバッファの上限
const maxPrealloc = 16 << 20

// Archive は開いたzipアーカイブのインターフェース
type Archive interface {
	Entries() []zipname.Entry
	OpenEntry(e zipname.Entry) (io.ReadCloser, error)
	Close() error
}

// ArchiveOpener はアーカイブを開くためのインターフェース
type ArchiveOpener interface {
	Open(path string) (Archive, error)
}

// DefaultArchiveOpener はzipnameでアーカイブを開く実装
type DefaultArchiveOpener struct{}

func (o *DefaultArchiveOpener) Open(path string) (Archive, error) {
	a, err := zipname.Open(path)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// MemoryExtractor はメモリへの抽出を行うインターフェース
type MemoryExtractor interface {
	ExtractToMemory(archive Archive, entry zipname.Entry) ([]byte, error)
}

// DefaultMemoryExtractor はデフォルトのメモリ抽出実装
type DefaultMemoryExtractor struct{}

func (e *DefaultMemoryExtractor) ExtractToMemory(archive Archive, entry zipname.Entry) ([]byte, error) {
	rc, err := archive.OpenEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}
	defer rc.Close()

	buf := make([]byte, 0, min(entry.Size, maxPrealloc))
	writer := &memoryWriter{buf: &buf}
	if _, err := io.Copy(writer, rc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}
	if len(*writer.buf) == 0 {
		return nil, ErrEmptyFile
	}

	return *writer.buf, nil
}

// memoryWriter はメモリへの書き込み用Writer
type memoryWriter struct {
	buf *[]byte
}

func (w *memoryWriter) Write(p []byte) (n int, err error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

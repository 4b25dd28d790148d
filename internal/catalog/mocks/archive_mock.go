package mocks

import (
	"bytes"
	"errors"
	"io"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/archive"
	"github.com/shiroemons/go-cwcatalog/pkg/zipname"
)

// MockArchiveEntry はモックアーカイブのエントリ
type MockArchiveEntry struct {
	Name      string
	Data      []byte
	Encrypted bool
}

// MockArchive はテスト用のアーカイブ
type MockArchive struct {
	Items      []MockArchiveEntry
	OpenError  error
	CloseCount int
}

// NewMockArchive は新しいMockArchiveを作成します
func NewMockArchive(items ...MockArchiveEntry) *MockArchive {
	return &MockArchive{Items: items}
}

func (a *MockArchive) Entries() []zipname.Entry {
	entries := make([]zipname.Entry, len(a.Items))
	for i, item := range a.Items {
		entries[i] = zipname.Entry{
			RawName:     item.Name,
			DisplayName: item.Name,
			Index:       i,
			Size:        uint64(len(item.Data)),
			Encrypted:   item.Encrypted,
		}
	}
	return entries
}

func (a *MockArchive) OpenEntry(e zipname.Entry) (io.ReadCloser, error) {
	if a.OpenError != nil {
		return nil, a.OpenError
	}
	if e.Index < 0 || e.Index >= len(a.Items) {
		return nil, errors.New("entry not found")
	}
	return io.NopCloser(bytes.NewReader(a.Items[e.Index].Data)), nil
}

func (a *MockArchive) Close() error {
	a.CloseCount++
	return nil
}

// MockArchiveOpener はテスト用のアーカイブオープナー
type MockArchiveOpener struct {
	Archives map[string]*MockArchive
	Error    error
}

func (o *MockArchiveOpener) Open(path string) (archive.Archive, error) {
	if o.Error != nil {
		return nil, o.Error
	}
	a, ok := o.Archives[path]
	if !ok {
		return nil, zipname.ErrNotZip
	}
	return a, nil
}

// MockMemoryExtractor はテスト用のメモリ抽出モック
type MockMemoryExtractor struct {
	Data  []byte
	Error error
}

func (m *MockMemoryExtractor) ExtractToMemory(_ archive.Archive, _ zipname.Entry) ([]byte, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Data, nil
}

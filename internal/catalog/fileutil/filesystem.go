package fileutil

import (
	"io"
	"os"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/interfaces"
)

// OSFileSystem は実際のOSファイルシステムを使用する実装
type OSFileSystem struct{}

// NewOSFileSystem は新しいOSFileSystemを作成します
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Open はファイルを読み込み用に開きます
func (fs *OSFileSystem) Open(name string) (io.ReadSeekCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ReadFile はファイルを読み込みます
func (fs *OSFileSystem) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// Stat はファイル情報を取得します
func (fs *OSFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// ReadDir はディレクトリを読み込みます
func (fs *OSFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	result := make([]interfaces.DirEntry, len(entries))
	for i, entry := range entries {
		result[i] = entry
	}
	return result, nil
}

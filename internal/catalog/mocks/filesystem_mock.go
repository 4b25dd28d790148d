// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/interfaces"
)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files    map[string][]byte
	Dirs     map[string]bool
	ModTimes map[string]time.Time
	Error    error

	// ReadDirErrors はディレクトリごとにReadDirが返すエラー
	ReadDirErrors map[string]error

	mu sync.Mutex
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:         make(map[string][]byte),
		Dirs:          make(map[string]bool),
		ModTimes:      make(map[string]time.Time),
		ReadDirErrors: make(map[string]error),
	}
}

// Open はファイルを読み込み用に開きます
func (m *MockFileSystem) Open(name string) (io.ReadSeekCloser, error) {
	data, err := m.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return &readSeekCloser{Reader: bytes.NewReader(data)}, nil
}

// ReadFile はファイルを読み込みます
func (m *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Error != nil {
		return nil, m.Error
	}
	data, exists := m.Files[filename]
	if !exists {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

// Stat はファイル情報を取得します
func (m *MockFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Error != nil {
		return nil, m.Error
	}
	if data, exists := m.Files[name]; exists {
		return &MockFileInfo{name: filepath.Base(name), size: int64(len(data)), modTime: m.ModTimes[name]}, nil
	}
	if m.Dirs[name] {
		return &MockFileInfo{name: filepath.Base(name), isDir: true, modTime: m.ModTimes[name]}, nil
	}
	return nil, fs.ErrNotExist
}

// ReadDir はディレクトリを読み込みます。エントリは名前順に並びます。
func (m *MockFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Error != nil {
		return nil, m.Error
	}
	if err := m.ReadDirErrors[dirname]; err != nil {
		return nil, err
	}
	if !m.Dirs[dirname] {
		return nil, errors.New("directory not found")
	}

	var entries []interfaces.DirEntry
	for path := range m.Files {
		if filepath.Dir(path) == dirname {
			entries = append(entries, &MockDirEntry{name: filepath.Base(path)})
		}
	}
	for path := range m.Dirs {
		if filepath.Dir(path) == dirname && path != dirname {
			entries = append(entries, &MockDirEntry{name: filepath.Base(path), isDir: true})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

// AddFile はファイルと親ディレクトリを登録します
func (m *MockFileSystem) AddFile(path string, data []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Files[path] = data
	m.ModTimes[path] = modTime
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		m.Dirs[dir] = true
		if dir == filepath.Dir(dir) {
			break
		}
	}
}

type readSeekCloser struct {
	*bytes.Reader
}

func (r *readSeekCloser) Close() error {
	return nil
}

// MockFileInfo はテスト用のFileInfo実装
type MockFileInfo struct {
	name    string
	isDir   bool
	size    int64
	modTime time.Time
}

// Name はファイル名を返します
func (fi *MockFileInfo) Name() string {
	return fi.name
}

// IsDir はディレクトリかどうかを返します
func (fi *MockFileInfo) IsDir() bool {
	return fi.isDir
}

// ModTime は更新日時を返します
func (fi *MockFileInfo) ModTime() time.Time {
	return fi.modTime
}

// Size はファイルサイズを返します
func (fi *MockFileInfo) Size() int64 {
	return fi.size
}

// MockDirEntry はテスト用のDirEntry実装
type MockDirEntry struct {
	name  string
	isDir bool
}

// Name はエントリ名を返します
func (de *MockDirEntry) Name() string {
	return de.name
}

// IsDir はディレクトリかどうかを返します
func (de *MockDirEntry) IsDir() bool {
	return de.isDir
}

package mocks

import (
	"context"
	"path/filepath"
	"sync"

	apperrors "github.com/shiroemons/go-cwcatalog/internal/catalog/errors"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
)

// MockExtractor はExtractorのモック実装です
type MockExtractor struct {
	Archives map[string][]MockArchiveEntry
	Error    error

	mu        sync.Mutex
	callCount int
}

// NewMockExtractor は新しいMockExtractorを作成します
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{Archives: make(map[string][]MockArchiveEntry)}
}

// ExtractFirst はモック実装です
func (m *MockExtractor) ExtractFirst(ctx context.Context, archivePath string, match func(name string) bool) (models.ArchiveEntry, []byte, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return models.ArchiveEntry{}, nil, err
	}
	if m.Error != nil {
		return models.ArchiveEntry{}, nil, m.Error
	}
	items, ok := m.Archives[archivePath]
	if !ok {
		return models.ArchiveEntry{}, nil, apperrors.NewArchiveError("open", archivePath, apperrors.ErrNotAnArchive)
	}
	for i, item := range items {
		if !match(item.Name) || item.Encrypted {
			continue
		}
		return models.ArchiveEntry{
			ContainerPath: filepath.ToSlash(archivePath),
			RawName:       item.Name,
			DisplayName:   item.Name,
			Index:         i,
		}, item.Data, nil
	}
	return models.ArchiveEntry{}, nil, apperrors.NewArchiveError("extract", archivePath, apperrors.ErrMissingManifestEntry)
}

// ExtractEntry はモック実装です
func (m *MockExtractor) ExtractEntry(ctx context.Context, archivePath, displayName string) (models.ArchiveEntry, []byte, error) {
	return m.ExtractFirst(ctx, archivePath, func(name string) bool {
		return name == displayName
	})
}

// CallCount は呼び出し回数を返します
func (m *MockExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

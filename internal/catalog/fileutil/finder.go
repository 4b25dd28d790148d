package fileutil

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/interfaces"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
)

// Finder はスキャン対象のパスを探索します
type Finder struct {
	fs      interfaces.FileSystem
	exclude []string
}

// NewFinder は新しいFinderを作成します。
// exclude はルートからの相対パス（"/" 区切り）に対する doublestar のパターンです。
func NewFinder(fs interfaces.FileSystem, exclude []string) (*Finder, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPattern, pattern)
		}
	}
	return &Finder{fs: fs, exclude: exclude}, nil
}

// Find はルート以下を再帰的に探索し、判定対象のパスを返します。
// Summary.xml を見つけたディレクトリはフォルダ形式のシナリオとして扱います。
func (f *Finder) Find(ctx context.Context, root string) ([]models.Candidate, error) {
	info, err := f.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	var candidates []models.Candidate
	if err := f.walk(ctx, root, root, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// walk は dir 内を探索します。サブディレクトリの読み込み失敗は無視します。
func (f *Finder) walk(ctx context.Context, root, dir string, out *[]models.Candidate) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries, err := f.fs.ReadDir(dir)
	if err != nil {
		if dir == root {
			return fmt.Errorf("%w: %s: %w", ErrReadDirectory, dir, err)
		}
		return nil
	}

	var subdirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if f.excluded(root, path) {
			continue
		}
		if entry.IsDir() {
			subdirs = append(subdirs, path)
			continue
		}

		switch kind := Classify(entry.Name()); kind {
		case models.SourceFolder:
			*out = append(*out, models.Candidate{Path: dir, Kind: kind})
		case models.SourceWSM, models.SourceWSN, models.SourceZip:
			*out = append(*out, models.Candidate{Path: path, Kind: kind})
		}
	}

	for _, sub := range subdirs {
		if err := f.walk(ctx, root, sub, out); err != nil {
			return err
		}
	}
	return nil
}

func (f *Finder) excluded(root, path string) bool {
	if len(f.exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range f.exclude {
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}
	}
	return false
}

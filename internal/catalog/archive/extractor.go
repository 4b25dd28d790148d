// Package archive はzipアーカイブから概要ファイルを探してメモリに展開します
package archive

import (
	"context"
	"fmt"

	apperrors "github.com/shiroemons/go-cwcatalog/internal/catalog/errors"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/fileutil"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/interfaces"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
	"github.com/shiroemons/go-cwcatalog/pkg/zipname"
)

// Extractor はアーカイブからファイルを抽出します
type Extractor struct {
	logger          interfaces.Logger
	opener          ArchiveOpener
	memoryExtractor MemoryExtractor
}

// NewExtractor は新しいExtractorを作成します
func NewExtractor(logger interfaces.Logger) *Extractor {
	return &Extractor{
		logger:          logger,
		opener:          &DefaultArchiveOpener{},
		memoryExtractor: &DefaultMemoryExtractor{},
	}
}

// NewExtractorWithOpener は新しいExtractorをオープナー付きで作成します
func NewExtractorWithOpener(logger interfaces.Logger, opener ArchiveOpener, extractor MemoryExtractor) *Extractor {
	return &Extractor{
		logger:          logger,
		opener:          opener,
		memoryExtractor: extractor,
	}
}

// ExtractFirst は表示名が match に一致する最初のエントリをメモリに展開します。
// 暗号化されたエントリと展開に失敗したエントリは飛ばして次の候補を試します。
func (e *Extractor) ExtractFirst(ctx context.Context, archivePath string, match func(name string) bool) (models.ArchiveEntry, []byte, error) {
	return e.extract(ctx, archivePath, match)
}

// ExtractEntry は表示名が displayName と一致するエントリをメモリに展開します
func (e *Extractor) ExtractEntry(ctx context.Context, archivePath, displayName string) (models.ArchiveEntry, []byte, error) {
	return e.extract(ctx, archivePath, func(name string) bool {
		return name == displayName
	})
}

func (e *Extractor) extract(ctx context.Context, archivePath string, match func(name string) bool) (models.ArchiveEntry, []byte, error) {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return models.ArchiveEntry{}, nil, ctx.Err()
	default:
	}

	archive, err := e.opener.Open(archivePath)
	if err != nil {
		return models.ArchiveEntry{}, nil, apperrors.NewArchiveError("open", archivePath, err)
	}
	defer archive.Close()

	encrypted := false
	for _, entry := range archive.Entries() {
		select {
		case <-ctx.Done():
			return models.ArchiveEntry{}, nil, ctx.Err()
		default:
		}

		if !match(entry.DisplayName) {
			continue
		}
		if entry.Encrypted {
			encrypted = true
			e.logger.Warnf("暗号化されたエントリをスキップします: %s!%s", archivePath, entry.DisplayName)
			continue
		}

		data, err := e.memoryExtractor.ExtractToMemory(archive, entry)
		if err != nil {
			e.logger.Warnf("エントリを展開できませんでした: %s!%s: %v", archivePath, entry.DisplayName, err)
			continue
		}

		e.logger.Printf("ファイル %s をメモリに展開しました（%d バイト）\n", entry.DisplayName, len(data))
		return toModel(archivePath, entry), data, nil
	}

	if encrypted {
		return models.ArchiveEntry{}, nil, apperrors.NewArchiveError("extract", archivePath,
			fmt.Errorf("%w: %w", apperrors.ErrMissingManifestEntry, apperrors.ErrEncryptedEntry))
	}
	return models.ArchiveEntry{}, nil, apperrors.NewArchiveError("extract", archivePath, apperrors.ErrMissingManifestEntry)
}

func toModel(archivePath string, entry zipname.Entry) models.ArchiveEntry {
	return models.ArchiveEntry{
		ContainerPath: fileutil.PathID(archivePath),
		RawName:       entry.RawName,
		DisplayName:   entry.DisplayName,
		Index:         entry.Index,
		Encrypted:     entry.Encrypted,
	}
}

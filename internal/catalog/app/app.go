// Package app はシナリオのパスからカタログ用のメタデータを作成します
package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/archive"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/config"
	apperrors "github.com/shiroemons/go-cwcatalog/internal/catalog/errors"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/fileutil"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/interfaces"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/normalize"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/parser"
	"github.com/shiroemons/go-cwcatalog/pkg/cwfile"
)

// App はシナリオのメタデータ抽出を管理します
type App struct {
	config     *config.Config
	logger     interfaces.Logger
	fs         interfaces.FileSystem
	extractor  interfaces.Extractor
	finder     interfaces.CandidateFinder
	parser     *parser.ManifestParser
	normalizer *normalize.Normalizer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Extractor  interfaces.Extractor
	Finder     interfaces.CandidateFinder
	Logger     interfaces.Logger
}

// New は新しいAppを作成します
func New(cfg *config.Config) (*App, error) {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = config.NewNopLogger()
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	var extractor interfaces.Extractor
	if opts.Extractor != nil {
		extractor = opts.Extractor
	} else {
		extractor = archive.NewExtractor(logger)
	}

	var finder interfaces.CandidateFinder
	if opts.Finder != nil {
		finder = opts.Finder
	} else {
		f, err := fileutil.NewFinder(fs, cfg.Exclude)
		if err != nil {
			return nil, err
		}
		finder = f
	}

	return &App{
		config:     cfg,
		logger:     logger,
		fs:         fs,
		extractor:  extractor,
		finder:     finder,
		parser:     parser.NewManifestParser(),
		normalizer: normalize.New(cfg.Labels),
	}, nil
}

// DecodeOne は1つのパスからレコードを作成します。
//
// 戻り値は次のいずれかです。
//   - レコードのみ: 正常に読み込めた
//   - レコードとエラー: 読み込みに失敗したため既定値で埋めたレコード
//   - エラーのみ: レコードを作らない（apperrors.ErrNoRecord を含む）
func (a *App) DecodeOne(ctx context.Context, path string) (*models.CanonicalMetadata, error) {
	return a.decode(ctx, models.Candidate{Path: path, Kind: fileutil.Classify(path)})
}

// decode は判定済みの種類に従ってレコードを作成します。
// ディレクトリは種類にかかわらずフォルダ形式として扱います。
func (a *App) decode(ctx context.Context, c models.Candidate) (*models.CanonicalMetadata, error) {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(c.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNoRecord, err)
	}
	info, err := a.fs.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", apperrors.ErrNoRecord, ErrReadFile, err)
	}

	if info.IsDir() {
		return a.decodeFolder(abs)
	}

	switch c.Kind {
	case models.SourceWSM:
		return a.decodeWSM(abs, info.ModTime())
	case models.SourceWSN:
		return a.decodeWSN(ctx, abs, info.ModTime())
	case models.SourceZip:
		return a.decodeZip(ctx, abs, info.ModTime())
	case models.SourceFolder:
		return a.decodeFolder(filepath.Dir(abs))
	default:
		return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrNoRecord, ErrUnsupportedPath, c.Path)
	}
}

// decodeFolder は Summary.xml を持つフォルダを読み込みます。
// 更新日時はフォルダではなく Summary.xml のものを使います。
func (a *App) decodeFolder(dir string) (*models.CanonicalMetadata, error) {
	src := normalize.Source{PathID: fileutil.PathID(dir), Kind: models.SourceFolder}
	py := a.normalizer.Labels().Py

	manifest, ok, err := a.findManifest(dir)
	if err != nil {
		return a.normalizer.Default(src, py), apperrors.NewArchiveError("folder", dir, fmt.Errorf("%w: %w", ErrReadFile, err))
	}
	if !ok {
		return a.normalizer.Default(src, py), apperrors.NewArchiveError("folder", dir, apperrors.ErrMissingManifestEntry)
	}

	if info, err := a.fs.Stat(manifest); err == nil {
		src.ModTime = info.ModTime()
	}
	raw, err := a.fs.ReadFile(manifest)
	if err != nil {
		return a.normalizer.Default(src, py), fmt.Errorf("%w: %w", ErrReadFile, err)
	}

	record, err := a.parser.Parse(manifest, raw)
	if err != nil {
		return a.normalizer.Default(src, py), err
	}
	a.logger.Printf("%s を %s として読み込みました\n", manifest, record.Encoding)
	return a.normalizer.FromXML(src, record), nil
}

// findManifest は大文字小文字も一致する Summary.xml を探します
func (a *App) findManifest(dir string) (string, bool, error) {
	entries, err := a.fs.ReadDir(dir)
	if err != nil {
		return "", false, err
	}
	for _, entry := range entries {
		if !entry.IsDir() && entry.Name() == fileutil.ManifestFileName {
			return filepath.Join(dir, entry.Name()), true, nil
		}
	}
	return "", false, nil
}

// decodeWSM はディスク上の.wsmを読み込みます
func (a *App) decodeWSM(path string, modTime time.Time) (*models.CanonicalMetadata, error) {
	src := normalize.Source{PathID: fileutil.PathID(path), Kind: models.SourceWSM, ModTime: modTime}

	summary, err := a.readSummaryFile(path)
	if err != nil {
		return a.normalizer.Default(src, a.normalizer.Labels().OG), err
	}
	return a.normalizer.FromBinary(src, summary), nil
}

func (a *App) readSummaryFile(path string) (*cwfile.Summary, error) {
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	defer f.Close()

	summary, err := cwfile.DecodeSummaryFrom(bufio.NewReader(f))
	if err != nil {
		return nil, apperrors.NewParseError(path, err)
	}
	return summary, nil
}

// decodeWSN は.wsnアーカイブ内の Summary.xml を読み込みます
func (a *App) decodeWSN(ctx context.Context, path string, modTime time.Time) (*models.CanonicalMetadata, error) {
	src := normalize.Source{PathID: fileutil.PathID(path), Kind: models.SourceWSN, ModTime: modTime}
	py := a.normalizer.Labels().Py

	entry, data, err := a.extractor.ExtractFirst(ctx, path, parser.IsManifest)
	if err != nil {
		if isCanceled(err) {
			return nil, err
		}
		return a.normalizer.Default(src, py), err
	}

	record, err := a.parser.Parse(entry.PathID(), data)
	if err != nil {
		return a.normalizer.Default(src, py), err
	}
	return a.normalizer.FromXML(src, record), nil
}

// decodeZip は.zip内の最初の概要ファイルを読み込みます。
// 識別子は "<zip>!<エントリ名>"、更新日時はzip自体のものです。
func (a *App) decodeZip(ctx context.Context, path string, modTime time.Time) (*models.CanonicalMetadata, error) {
	entry, data, err := a.extractor.ExtractFirst(ctx, path, isSummaryEntry)
	if err != nil {
		if isCanceled(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNoRecord, err)
	}

	src := normalize.Source{PathID: entry.PathID(), Kind: models.SourceZip, ModTime: modTime}
	if parser.IsManifest(entry.DisplayName) {
		record, err := a.parser.Parse(entry.PathID(), data)
		if err != nil {
			return a.normalizer.Default(src, a.normalizer.Labels().Py), err
		}
		return a.normalizer.FromXML(src, record), nil
	}

	summary, err := cwfile.DecodeSummaryFrom(bytes.NewReader(data))
	if err != nil {
		return a.normalizer.Default(src, a.normalizer.Labels().OG), apperrors.NewParseError(entry.PathID(), err)
	}
	return a.normalizer.FromBinary(src, summary), nil
}

func isSummaryEntry(name string) bool {
	return parser.IsManifest(name) || parser.IsBinarySummary(name)
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

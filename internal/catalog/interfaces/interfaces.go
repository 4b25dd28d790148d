// Package interfaces はカタログ処理で使用するインターフェースを定義します
package interfaces

import (
	"context"
	"io"
	"time"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	Open(name string) (io.ReadSeekCloser, error)
	ReadFile(name string) ([]byte, error)
	Stat(name string) (FileInfo, error)
	ReadDir(dirname string) ([]DirEntry, error)
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	Name() string
	IsDir() bool
	ModTime() time.Time
	Size() int64
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	Name() string
	IsDir() bool
}

// Extractor はアーカイブからエントリをメモリに展開するインターフェースです
type Extractor interface {
	// ExtractFirst は表示名が match に一致する最初の読み込み可能なエントリを展開します
	ExtractFirst(ctx context.Context, archivePath string, match func(name string) bool) (models.ArchiveEntry, []byte, error)
	// ExtractEntry は表示名が一致するエントリを展開します
	ExtractEntry(ctx context.Context, archivePath, displayName string) (models.ArchiveEntry, []byte, error)
}

// CandidateFinder はスキャン対象のパスを列挙するインターフェース
type CandidateFinder interface {
	Find(ctx context.Context, root string) ([]models.Candidate, error)
}

// Logger はログ出力のインターフェース
type Logger interface {
	// Printf はデバッグ時のみ出力します
	Printf(format string, a ...any)
	Warnf(format string, a ...any)
	Errorf(format string, a ...any)
}

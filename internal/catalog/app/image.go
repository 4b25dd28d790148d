package app

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	apperrors "github.com/shiroemons/go-cwcatalog/internal/catalog/errors"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/fileutil"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
	"github.com/shiroemons/go-cwcatalog/pkg/cwfile"
)

// LoadImage はレコードの識別子から.wsmに埋め込まれた画像を読み込みます。
// 識別子は.wsmのパス、または "<zip>!<エントリ名>" 形式です。
func (a *App) LoadImage(ctx context.Context, pathID string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var summary *cwfile.Summary
	if container, entry, ok := fileutil.SplitPathID(pathID); ok {
		if fileutil.Classify(entry) != models.SourceWSM {
			return nil, fmt.Errorf("%w: %s", ErrNotBinarySummary, pathID)
		}
		_, data, err := a.extractor.ExtractEntry(ctx, container, entry)
		if err != nil {
			return nil, err
		}
		if summary, err = cwfile.DecodeSummaryFrom(bytes.NewReader(data)); err != nil {
			return nil, apperrors.NewParseError(pathID, err)
		}
	} else {
		path := filepath.FromSlash(pathID)
		if fileutil.Classify(path) != models.SourceWSM {
			return nil, fmt.Errorf("%w: %s", ErrNotBinarySummary, pathID)
		}
		var err error
		if summary, err = a.readSummaryFile(path); err != nil {
			return nil, err
		}
	}

	if len(summary.Image) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoImage, pathID)
	}
	return summary.Image, nil
}

package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
)

// Watch は root 以下の変更を監視し、変更が落ち着いた時点で再スキャンします。
// 開始時に一度スキャンし、ctx がキャンセルされるまで戻りません。
// スキャンのたびに onScan が呼ばれます。
func (a *App) Watch(ctx context.Context, root string, sink Sink, onScan func(models.ScanStats, error)) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	defer watcher.Close()

	if err := a.watchTree(watcher, abs); err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}

	rescan := func() {
		stats, err := a.Scan(ctx, abs, sink)
		if onScan != nil {
			onScan(stats, err)
		}
	}
	rescan()

	debounce := a.config.WatchDebounce()
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := a.fs.Stat(event.Name); err == nil && info.IsDir() {
					if err := a.watchTree(watcher, event.Name); err != nil {
						a.logger.Warnf("監視を追加できませんでした: %s: %v", event.Name, err)
					}
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			a.logger.Printf("変更を検出しました: %s\n", event)
			pending = time.After(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warnf("監視中にエラーが発生しました: %v", err)
		case <-pending:
			pending = nil
			rescan()
		}
	}
}

// watchTree は dir とそのサブディレクトリを監視対象に加えます
func (a *App) watchTree(watcher *fsnotify.Watcher, dir string) error {
	if err := watcher.Add(dir); err != nil {
		return err
	}
	entries, err := a.fs.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := a.watchTree(watcher, filepath.Join(dir, entry.Name())); err != nil {
			a.logger.Warnf("監視を追加できませんでした: %s: %v", entry.Name(), err)
		}
	}
	return nil
}

package app

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/fileutil"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
)

// Sink はスキャンで作成したレコードを受け取ります。
// 呼び出しは1つのゴルーチンからのみ行われます。エラーを返すとスキャンを中断します。
type Sink func(*models.CanonicalMetadata) error

type result struct {
	path   string
	record *models.CanonicalMetadata
	err    error
}

// Scan は root 以下を探索し、見つかったシナリオのレコードを sink に渡します。
// 1ファイルの失敗はスキャン全体を止めません。エラーを返すのはキャンセル、
// ルートが読めない場合、sink がエラーを返した場合のみです。
// レコードは読み込みが終わった順に渡されます。
func (a *App) Scan(ctx context.Context, root string, sink Sink) (models.ScanStats, error) {
	var stats models.ScanStats

	abs, err := filepath.Abs(root)
	if err != nil {
		return stats, err
	}
	candidates, err := a.finder.Find(ctx, abs)
	if err != nil {
		return stats, err
	}
	a.logger.Printf("%s で %d 件の判定対象を見つけました\n", abs, len(candidates))
	return a.scan(ctx, candidates, sink)
}

// ScanPaths は呼び出し側が列挙したパスを判定し、レコードを sink に渡します。
// ディレクトリはフォルダ形式のシナリオとして扱います。
func (a *App) ScanPaths(ctx context.Context, paths []string, sink Sink) (models.ScanStats, error) {
	candidates := make([]models.Candidate, len(paths))
	for i, path := range paths {
		candidates[i] = models.Candidate{Path: path, Kind: fileutil.Classify(path)}
	}
	return a.scan(ctx, candidates, sink)
}

func (a *App) scan(ctx context.Context, candidates []models.Candidate, sink Sink) (models.ScanStats, error) {
	stats := models.ScanStats{Files: len(candidates)}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan models.Candidate)
	results := make(chan result)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for _, c := range candidates {
			select {
			case jobs <- c:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var workers sync.WaitGroup
	for i, n := 0, a.workerCount(); i < n; i++ {
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()
			for c := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				record, err := a.decode(gctx, c)
				if record == nil && isCanceled(err) {
					return err
				}
				select {
				case results <- result{path: c.Path, record: record, err: err}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		workers.Wait()
		close(results)
	}()

	var sinkErr error
	for r := range results {
		if sinkErr != nil {
			continue
		}
		a.account(&stats, r)
		if r.record == nil {
			continue
		}
		if err := sink(r.record); err != nil {
			sinkErr = err
			cancel()
		}
	}

	waitErr := g.Wait()
	if sinkErr != nil {
		return stats, sinkErr
	}
	return stats, waitErr
}

func (a *App) account(stats *models.ScanStats, r result) {
	switch {
	case r.record != nil && r.err == nil:
		stats.Records++
	case r.record != nil:
		stats.Records++
		stats.Degraded++
		a.logger.Warnf("既定値で登録しました: %s: %v", r.path, r.err)
	default:
		stats.Skipped++
		a.logger.Printf("スキップしました: %s: %v\n", r.path, r.err)
	}
}

func (a *App) workerCount() int {
	if a.config.Workers > 0 {
		return a.config.Workers
	}
	return runtime.NumCPU()
}

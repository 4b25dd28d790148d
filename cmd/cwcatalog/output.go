package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/config"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// recordWriter はレコードの一覧を出力形式に従って書き出します
type recordWriter struct {
	format string
	now    func() time.Time
}

func newRecordWriter(format string) *recordWriter {
	return &recordWriter{format: format, now: time.Now}
}

// Write はレコードを識別子の順に並べて出力します
func (rw *recordWriter) Write(w io.Writer, records []*models.CanonicalMetadata) error {
	sorted := make([]*models.CanonicalMetadata, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PathID < sorted[j].PathID
	})

	switch rw.format {
	case config.OutputJSON:
		return writeJSON(w, sorted)
	case config.OutputYAML:
		return writeYAML(w, sorted)
	case config.OutputTable, "":
		_, err := io.WriteString(w, rw.table(sorted, shouldDecorate(w))+"\n")
		return err
	default:
		return fmt.Errorf("未対応の出力形式です: %s", rw.format)
	}
}

func writeJSON(w io.Writer, records []*models.CanonicalMetadata) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeYAML(w io.Writer, records []*models.CanonicalMetadata) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

func (rw *recordWriter) table(records []*models.CanonicalMetadata, decorate bool) string {
	tw := table.NewWriter()
	if decorate {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"パス", "タイトル", "作者", "形式", "レベル", "言語", "更新"})
	now := rw.now()
	for _, r := range records {
		tw.AppendRow(table.Row{
			r.PathID,
			r.Title,
			r.Author,
			r.Version,
			levelRange(r.LevelMin, r.LevelMax),
			r.Language,
			modified(r.ModTime, now),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func levelRange(lo, hi int) string {
	if lo == 0 && hi == 0 {
		return "-"
	}
	if lo == hi {
		return strconv.Itoa(lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

func modified(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// writeStats はスキャンの集計を1行で書き出します
func writeStats(w io.Writer, stats models.ScanStats) {
	fmt.Fprintf(w, "%s 件を判定: %s 件を出力 (既定値 %s 件, スキップ %s 件)\n",
		humanize.Comma(int64(stats.Files)),
		humanize.Comma(int64(stats.Records)),
		humanize.Comma(int64(stats.Degraded)),
		humanize.Comma(int64(stats.Skipped)))
}

func shouldDecorate(w io.Writer) bool {
	return isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

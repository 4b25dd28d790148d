package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/app"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/config"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/mocks"
	"github.com/shiroemons/go-cwcatalog/pkg/cwfile"
	"github.com/shiroemons/go-cwcatalog/pkg/cwfile/cwfiletest"
)

var fixedTime = time.Date(2023, 4, 1, 9, 30, 0, 0, time.UTC)

const manifestXML = `<?xml version="1.0" encoding="utf-8"?>
<Summary>
  <Property>
    <Name>冒険者の宿</Name>
    <Author>作者</Author>
    <ImagePath>Table/title.png</ImagePath>
    <Level min="1" max="4" />
  </Property>
</Summary>`

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Workers = 2
	return &cfg
}

func newTestApp(t *testing.T, cfg *config.Config) (*app.App, *mocks.MockLogger) {
	t.Helper()
	logger := mocks.NewMockLogger()
	a, err := app.NewWithOptions(cfg, app.Options{Logger: logger})
	require.NoError(t, err)
	return a, logger
}

// nextSummary はNEXT形式の.wsmを作成します
func nextSummary(name string, image []byte) []byte {
	return cwfiletest.Summary(cwfile.Summary{
		Image:    image,
		Name:     name,
		Author:   "作者",
		LevelMin: 2,
		LevelMax: 5,
		Steps: []cwfile.Step{
			{Name: "進行", VariableNames: [cwfile.StepVariableCount]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}},
		},
	}, 70003)
}

// truncatedSummary はステップ一覧の途中で切れた.wsmを作成します
func truncatedSummary() []byte {
	full := nextSummary("途中まで", nil)
	return full[:len(full)-60]
}

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	require.NoError(t, os.Chtimes(path, fixedTime, fixedTime))
	return path
}

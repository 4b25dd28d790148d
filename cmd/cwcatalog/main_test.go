package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
	"github.com/shiroemons/go-cwcatalog/pkg/cwfile"
	"github.com/shiroemons/go-cwcatalog/pkg/cwfile/cwfiletest"
)

var modTime = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func sampleRecords() []*models.CanonicalMetadata {
	return []*models.CanonicalMetadata{
		{
			PathID:        "/s/b.wsm",
			Title:         "洞窟",
			Author:        "作者B",
			Version:       "NEXT",
			LevelMin:      1,
			LevelMax:      4,
			ImagePaths:    []string{},
			PositionTypes: []string{},
			Language:      "jp",
			ModTime:       modTime,
			Source:        models.SourceWSM,
		},
		{
			PathID:        "/s/a.zip!Summary.xml",
			Title:         "冒険者の宿",
			Author:        "作者A",
			Version:       "Py",
			ImagePaths:    []string{"Table/title.png"},
			PositionTypes: []string{"Default"},
			Language:      "kr",
			ModTime:       modTime,
			Source:        models.SourceZip,
		},
	}
}

func TestRecordWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRecordWriter("json").Write(&buf, sampleRecords()))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)

	// 識別子の順に並ぶ
	assert.Equal(t, "/s/a.zip!Summary.xml", got[0]["path"])
	assert.Equal(t, "zip", got[0]["source"])
	assert.Equal(t, []any{"Table/title.png"}, got[0]["image_paths"])
	assert.Equal(t, "NEXT", got[1]["version"])
	assert.Equal(t, float64(4), got[1]["level_max"])
	assert.Equal(t, []any{}, got[1]["image_paths"])
}

func TestRecordWriter_JSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRecordWriter("json").Write(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRecordWriter_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRecordWriter("yaml").Write(&buf, sampleRecords()))

	out := buf.String()
	assert.Contains(t, out, "- path: /s/a.zip!Summary.xml")
	assert.Contains(t, out, "source: wsm")
	assert.Contains(t, out, "title: 冒険者の宿")
	assert.Less(t, strings.Index(out, "/s/a.zip"), strings.Index(out, "/s/b.wsm"))
}

func TestRecordWriter_Table(t *testing.T) {
	rw := newRecordWriter("table")
	rw.now = func() time.Time { return modTime.Add(72 * time.Hour) }

	var buf bytes.Buffer
	require.NoError(t, rw.Write(&buf, sampleRecords()))

	out := buf.String()
	assert.Contains(t, out, "タイトル")
	assert.Contains(t, out, "冒険者の宿")
	assert.Contains(t, out, "1-4")
	assert.Contains(t, out, "3 days ago")
	assert.Less(t, strings.Index(out, "/s/a.zip"), strings.Index(out, "/s/b.wsm"))
}

func TestRecordWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, newRecordWriter("csv").Write(&buf, sampleRecords()))
}

func TestLevelRange(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
		want   string
	}{
		{"未設定", 0, 0, "-"},
		{"同じ値", 3, 3, "3"},
		{"範囲", 1, 4, "1-4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levelRange(tt.lo, tt.hi))
		})
	}
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	writeStats(&buf, models.ScanStats{Files: 1200, Records: 1100, Degraded: 3, Skipped: 100})
	assert.Equal(t, "1,200 件を判定: 1,100 件を出力 (既定値 3 件, スキップ 100 件)\n", buf.String())
}

// runCommand は設定ディレクトリを一時フォルダに向けてコマンドを実行します
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSummary(t *testing.T, dir string) string {
	t.Helper()
	data := cwfiletest.Summary(cwfile.Summary{
		Image:    []byte("BM-image"),
		Name:     "洞窟",
		Author:   "作者",
		LevelMin: 1,
		LevelMax: 4,
	}, 70003)
	path := filepath.Join(dir, "Summary.wsm")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestCommand_Version(t *testing.T) {
	out, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "cwcatalog version "))
}

func TestCommand_Show(t *testing.T) {
	path := writeSummary(t, t.TempDir())

	out, _, err := runCommand(t, "show", "-o", "json", path)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "洞窟", got[0]["title"])
	assert.Equal(t, "NEXT", got[0]["version"])
	assert.Equal(t, "wsm", got[0]["source"])
}

func TestCommand_Show_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readme.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	out, _, err := runCommand(t, "show", path)
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestCommand_Scan(t *testing.T) {
	root := t.TempDir()
	writeSummary(t, root)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "folder"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "folder", "Summary.xml"),
		[]byte(`<Summary><Property><Name>宿</Name></Property></Summary>`), 0o644))

	out, errOut, err := runCommand(t, "scan", "-o", "yaml", "-w", "2", root)
	require.NoError(t, err)
	assert.Contains(t, out, "title: 洞窟")
	assert.Contains(t, out, "title: 宿")
	assert.Contains(t, errOut, "2 件を判定: 2 件を出力")
}

func TestCommand_Image(t *testing.T) {
	dir := t.TempDir()
	path := writeSummary(t, dir)
	dest := filepath.Join(dir, "out.bmp")

	_, errOut, err := runCommand(t, "image", path, "-f", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("BM-image"), data)
	assert.Contains(t, errOut, "8 B")
}

func TestCommand_ConfigInit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "cwcatalog", "config.toml")

	out, _, err := runCommand(t, "config", "init", "--path", dest)
	require.NoError(t, err)
	assert.Contains(t, out, dest)
	assert.FileExists(t, dest)

	out, _, err = runCommand(t, "--config", dest, "--output", "json", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "output = 'json'")

	_, _, err = runCommand(t, "config", "init", "--path", dest)
	assert.Error(t, err)
}

func TestCommand_InvalidOutput(t *testing.T) {
	_, _, err := runCommand(t, "--output", "csv", "show", "x.wsm")
	assert.Error(t, err)
}

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/config"
)

func TestLoad_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "cwcatalog", "config.toml"), resolved)

	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, config.OutputTable, cfg.Output)
	assert.Equal(t, config.LogFormatConsole, cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.ShowWarning)
	assert.Equal(t, "OG", cfg.Labels.OG)
	assert.Empty(t, cfg.Exclude)
}

func TestLoad_File(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		check     func(*testing.T, *config.Config)
		wantError error
	}{
		{
			name: "値の上書き",
			content: `
workers = 3
exclude = ["**/backup"]
output = "JSON"
show_warning = false

[labels]
next = "Next"
`,
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 3, cfg.Workers)
				assert.Equal(t, []string{"**/backup"}, cfg.Exclude)
				assert.Equal(t, config.OutputJSON, cfg.Output)
				assert.False(t, cfg.ShowWarning)
				assert.Equal(t, "Next", cfg.Labels.Next)
			},
		},
		{
			name:    "ワーカー数0は自動",
			content: "workers = 0\n",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, runtime.NumCPU(), cfg.Workers)
			},
		},
		{
			name:      "不正な出力形式",
			content:   `output = "csv"`,
			wantError: config.ErrInvalidConfig,
		},
		{
			name:      "不正なログレベル",
			content:   `log_level = "loud"`,
			wantError: config.ErrInvalidConfig,
		},
		{
			name:      "不正な除外パターン",
			content:   `exclude = ["[abc"]`,
			wantError: config.ErrInvalidConfig,
		},
		{
			name:      "未知のキー",
			content:   `unknown_key = 1`,
			wantError: config.ErrParseConfig,
		},
		{
			name:      "TOMLの構文エラー",
			content:   `workers = `,
			wantError: config.ErrParseConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, resolved, exists, err := config.Load(path)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.True(t, exists)
			assert.Equal(t, path, resolved)
			tt.check(t, cfg)
		})
	}
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, config.WriteSample(path))

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, config.Default().Labels, cfg.Labels)

	assert.ErrorIs(t, config.WriteSample(path), config.ErrConfigExists)
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		wantDebug   bool
		wantWarning bool
	}{
		{
			name:        "既定",
			cfg:         config.Config{LogLevel: "info", LogFormat: config.LogFormatJSON, ShowWarning: true},
			wantDebug:   false,
			wantWarning: true,
		},
		{
			name:        "デバッグモード",
			cfg:         config.Config{LogLevel: "info", LogFormat: config.LogFormatJSON, ShowWarning: true, DebugMode: true},
			wantDebug:   true,
			wantWarning: true,
		},
		{
			name:        "警告を表示しない",
			cfg:         config.Config{LogLevel: "info", LogFormat: config.LogFormatJSON},
			wantDebug:   false,
			wantWarning: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := config.NewLogger(&tt.cfg, &buf)
			require.NoError(t, err)

			logger.Printf("デバッグ %d\n", 1)
			logger.Warnf("警告 %s", "w")
			logger.Errorf("エラー")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("デバッグ 1")), out)
			assert.Equal(t, tt.wantWarning, bytes.Contains(buf.Bytes(), []byte("警告 w")), out)
			assert.Contains(t, out, "エラー")
		})
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := config.NewLogger(&config.Config{LogLevel: "loud"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

// Package config はcwcatalogコマンドの設定管理を行います
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/normalize"
)

const Version = "0.1.0"

// 出力形式
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ログ形式
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config はアプリケーションの設定を保持します
type Config struct {
	Workers         int              `toml:"workers"`
	Exclude         []string         `toml:"exclude"`
	LogLevel        string           `toml:"log_level"`
	LogFormat       string           `toml:"log_format"`
	Output          string           `toml:"output"`
	ShowWarning     bool             `toml:"show_warning"`
	WatchDebounceMS int              `toml:"watch_debounce_ms"`
	Labels          normalize.Labels `toml:"labels"`

	// DebugMode はコマンドラインの --debug でのみ有効になります
	DebugMode bool `toml:"-"`
}

// Default は既定の設定を返します
func Default() Config {
	return Config{
		Workers:         runtime.NumCPU(),
		Exclude:         []string{},
		LogLevel:        "info",
		LogFormat:       LogFormatConsole,
		Output:          OutputTable,
		ShowWarning:     true,
		WatchDebounceMS: 1000,
		Labels:          normalize.DefaultLabels(),
	}
}

// WatchDebounce は監視時に再スキャンを待つ時間を返します
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}

// DefaultConfigPath は既定の設定ファイルの場所を返します
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrResolveConfigDir, err)
	}
	return filepath.Join(dir, "cwcatalog", "config.toml"), nil
}

// Load は設定ファイルを読み込み、正規化と検証を行います。
// ファイルが存在しない場合は既定値を返します。
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("%w: %w", ErrOpenConfig, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("%w: %w", ErrParseConfig, err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("%w: %w", ErrOpenConfig, err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("%w: %s はディレクトリです", ErrOpenConfig, path)
	}
	return path, true, nil
}

func (c *Config) normalize() {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = LogFormatConsole
	}
	if c.Output == "" {
		c.Output = OutputTable
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = Default().WatchDebounceMS
	}
	if c.Exclude == nil {
		c.Exclude = []string{}
	}
}

// Validate は設定値を検証します
func (c *Config) Validate() error {
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: output = %q", ErrInvalidConfig, c.Output)
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log_format = %q", ErrInvalidConfig, c.LogFormat)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level = %q", ErrInvalidConfig, c.LogLevel)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: exclude = %q", ErrInvalidConfig, pattern)
		}
	}
	return nil
}

// Sample は既定値を書き出した設定ファイルの内容を返します
func Sample() ([]byte, error) {
	cfg := Default()
	cfg.Workers = 0
	return toml.Marshal(cfg)
}

// WriteSample は設定ファイルのひな形を path に作成します。既存のファイルは上書きしません。
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	data, err := Sample()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteConfig, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteConfig, err)
	}
	return nil
}

package config

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger はzapを使ったログ出力を管理します
type Logger struct {
	base        *zap.Logger
	sugar       *zap.SugaredLogger
	showWarning bool
}

// NewLogger は設定に従って w へ出力するLoggerを作成します
func NewLogger(cfg *Config, w io.Writer) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log_level = %q", ErrInvalidConfig, cfg.LogLevel)
	}
	if cfg.DebugMode {
		level = zapcore.DebugLevel
	}

	var encoder zapcore.Encoder
	switch cfg.LogFormat {
	case LogFormatJSON:
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	base := zap.New(core)
	return &Logger{
		base:        base,
		sugar:       base.Sugar(),
		showWarning: cfg.ShowWarning,
	}, nil
}

// NewNopLogger は何も出力しないLoggerを作成します
func NewNopLogger() *Logger {
	base := zap.NewNop()
	return &Logger{base: base, sugar: base.Sugar()}
}

// Printf はデバッグレベルが有効な場合のみメッセージを出力します
func (l *Logger) Printf(format string, a ...any) {
	l.sugar.Debug(message(format, a...))
}

// Warnf は警告を出力します。show_warning が無効な場合はデバッグレベルで出力します
func (l *Logger) Warnf(format string, a ...any) {
	if !l.showWarning {
		l.sugar.Debug(message(format, a...))
		return
	}
	l.sugar.Warn(message(format, a...))
}

// Errorf はエラーを出力します
func (l *Logger) Errorf(format string, a ...any) {
	l.sugar.Error(message(format, a...))
}

// Zap は元のzap.Loggerを返します
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

// Sync はバッファされたログを書き出します
func (l *Logger) Sync() error {
	return l.base.Sync()
}

func message(format string, a ...any) string {
	return strings.TrimRight(fmt.Sprintf(format, a...), "\n")
}

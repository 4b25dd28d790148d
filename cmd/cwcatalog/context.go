package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/app"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/config"
)

type commandContext struct {
	flags *rootFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig は設定ファイルを読み込み、コマンドラインのフラグで上書きします
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags.debug {
			cfg.DebugMode = true
		}
		if output := strings.ToLower(strings.TrimSpace(c.flags.output)); output != "" {
			cfg.Output = output
		}
		if c.flags.workers > 0 {
			cfg.Workers = c.flags.workers
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

// newApp は設定とロガーを用意してAppを作成します。
// 返される関数でロガーのバッファを書き出します。
func (c *commandContext) newApp(logOutput io.Writer) (*app.App, *config.Config, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := config.NewLogger(cfg, logOutput)
	if err != nil {
		return nil, nil, nil, err
	}
	application, err := app.NewWithOptions(cfg, app.Options{Logger: logger})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("初期化に失敗しました: %w", err)
	}
	return application, cfg, func() { _ = logger.Sync() }, nil
}

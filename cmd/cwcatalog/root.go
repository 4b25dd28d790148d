package main

import (
	"github.com/spf13/cobra"
)

// rootFlags はすべてのサブコマンドで共通のフラグ
type rootFlags struct {
	configPath string
	debug      bool
	output     string
	workers    int
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "cwcatalog",
		Short:         "シナリオのメタデータを一覧にします",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "設定ファイルのパス")
	pf.BoolVar(&flags.debug, "debug", false, "デバッグ情報を出力")
	pf.StringVarP(&flags.output, "output", "o", "", "出力形式 (table, json, yaml)")
	pf.IntVarP(&flags.workers, "workers", "w", 0, "同時に読み込むファイル数")

	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newImageCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

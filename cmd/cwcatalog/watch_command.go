package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <フォルダ>",
		Short: "フォルダを監視し、変更があるたびに一覧を出力します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cfg, flush, err := ctx.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer flush()

			writer := newRecordWriter(cfg.Output)
			var records []*models.CanonicalMetadata

			sink := func(r *models.CanonicalMetadata) error {
				records = append(records, r)
				return nil
			}
			onScan := func(stats models.ScanStats, err error) {
				defer func() { records = nil }()
				if errors.Is(err, context.Canceled) {
					return
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "スキャンに失敗しました: %v\n", err)
					return
				}
				if err := writer.Write(cmd.OutOrStdout(), records); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "出力に失敗しました: %v\n", err)
					return
				}
				writeStats(cmd.ErrOrStderr(), stats)
			}

			return application.Watch(cmd.Context(), args[0], sink, onScan)
		},
	}
}

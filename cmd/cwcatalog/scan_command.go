package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var asPaths bool

	cmd := &cobra.Command{
		Use:   "scan <フォルダ> | scan --paths <パス>...",
		Short: "フォルダ以下のシナリオを一覧にします",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !asPaths && len(args) > 1 {
				return errors.New("フォルダは1つだけ指定してください (複数のパスは --paths を使用)")
			}

			application, cfg, flush, err := ctx.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer flush()

			var records []*models.CanonicalMetadata
			sink := func(r *models.CanonicalMetadata) error {
				records = append(records, r)
				return nil
			}

			var stats models.ScanStats
			if asPaths {
				stats, err = application.ScanPaths(cmd.Context(), args, sink)
			} else {
				stats, err = application.Scan(cmd.Context(), args[0], sink)
			}
			if err != nil {
				return fmt.Errorf("スキャンに失敗しました: %w", err)
			}

			if err := newRecordWriter(cfg.Output).Write(cmd.OutOrStdout(), records); err != nil {
				return err
			}
			writeStats(cmd.ErrOrStderr(), stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asPaths, "paths", false, "引数を判定対象のパスとして扱う")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <パス>...",
		Short: "指定したシナリオのメタデータを表示します",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cfg, flush, err := ctx.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer flush()

			var (
				records []*models.CanonicalMetadata
				errs    []error
			)
			for _, path := range args {
				record, err := application.DecodeOne(cmd.Context(), path)
				if record == nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
					continue
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "警告: %s: %v\n", path, err)
				}
				records = append(records, record)
			}

			if len(records) > 0 {
				if err := newRecordWriter(cfg.Output).Write(cmd.OutOrStdout(), records); err != nil {
					return err
				}
			}
			return errors.Join(errs...)
		},
	}
}

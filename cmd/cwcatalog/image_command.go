package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newImageCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "image <識別子>",
		Short: ".wsmに埋め込まれた画像を書き出します",
		Long: `.wsmに埋め込まれた画像を書き出します。
識別子は .wsm のパス、または "<zip>!<エントリ名>" 形式です。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, flush, err := ctx.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer flush()

			data, err := application.LoadImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if outPath == "" || outPath == "-" {
				out := cmd.OutOrStdout()
				if isTerminal(out) {
					return errors.New("端末には画像を出力できません (-f でファイルを指定してください)")
				}
				_, err := out.Write(data)
				return err
			}

			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("画像の書き込みに失敗しました: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s を書き出しました (%s)\n", outPath, humanize.Bytes(uint64(len(data))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "file", "f", "", "書き出し先のファイル (- で標準出力)")
	return cmd
}

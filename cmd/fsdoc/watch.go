package main

import (
	"bytes"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grahms/fsdoc/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	o := &extractOptions{}
	var out string
	cmd := &cobra.Command{
		Use:   "watch <response.json>",
		Short: "Re-extract whenever a response file changes",
		Long: `Extract once, then again every time <response.json> is rewritten, until
interrupted. Output goes to stdout or, with --out, replaces a file.

Examples:
  fsdoc watch --out variables.yaml --format yaml response.json
  fsdoc watch --stage --docs-dir docs response.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(o.format); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w, err := watch.New(args[0],
				watch.WithDebounce(a.cfg.Watch.Debounce),
				watch.WithLogger(a.log))
			if err != nil {
				return err
			}

			run := func(context.Context) error {
				res, err := a.extract(cmd, args[0], o)
				if err != nil {
					return err
				}
				if out == "" {
					return writeResult(cmd.OutOrStdout(), res, o.format)
				}
				var buf bytes.Buffer
				if err := writeResult(&buf, res, o.format); err != nil {
					return err
				}
				return os.WriteFile(out, buf.Bytes(), 0o644)
			}

			if err := run(ctx); err != nil {
				a.log.Warn("initial extraction failed", zap.Error(err))
			}
			a.log.Info("watching", zap.String("path", w.Path()))
			return w.Run(ctx, run)
		},
	}
	o.addFlags(cmd)
	cmd.Flags().StringVar(&out, "out", "", "file to write each result to (default stdout)")
	return cmd
}

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nroehner/libSBOL/internal/log"
	"github.com/nroehner/libSBOL/internal/watcher"
)

func (c *cli) watchCmd() *cobra.Command {
	var (
		prefix   string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch FILE URI",
		Short: "Print a definition's sequence whenever its file changes",
		Long: `Print the composed sequence of a definition, then print it again each time FILE
changes on disk, until interrupted. Read errors are reported and watching continues.

Examples:
  sbol watch design.nq http://examples.com/ComponentDefinition/cassette/1.0.0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path, uri := args[0], args[1]

			cfg := watcher.DefaultConfig(path)
			if debounce > 0 {
				cfg.DebounceDur = debounce
			}
			w, err := watcher.New(cfg)
			if err != nil {
				return err
			}
			changes, err := w.Start()
			if err != nil {
				return err
			}
			defer func() { _ = w.Stop() }()

			show := func() {
				seq, err := c.composeSequence(ctx, path, uri, prefix)
				if err != nil {
					log.ErrorErr(log.CatCLI, "watch refresh failed", err, "path", path)
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
					return
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), seq)
			}

			show()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-changes:
					show()
				}
			}
		},
	}
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "text prepended to a composite sequence")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before re-reading (default 500ms)")
	return cmd
}

package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/pulsebar/internal/output"
	"github.com/blackwell-systems/pulsebar/internal/watcher"
)

func newFilesCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "files [flags] <glob>",
		Short: "List the files a pattern currently matches",
		Long: `List every file the glob matches right now, with its size, last write and the
heartbeat state that write alone would produce. Uses the same thresholds and
defaults file as the status line.`,
		Example: `  pulsebar files '/var/log/myapp/*.log'
  pulsebar files --warn 10 --critical 30 'build/*.log'`,
		Args: singlePattern,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd, args)
			if err != nil {
				return err
			}
			files, err := watcher.List(opts.Pattern)
			if err != nil {
				return fmt.Errorf("failed to list files: %w", err)
			}
			now := time.Now()
			out := cmd.OutOrStdout()
			fmt.Fprint(out, output.RenderFileTable(files, opts, now))
			if summary := output.RenderFileSummary(files, opts, now); summary != "" {
				fmt.Fprintln(out)
				fmt.Fprint(out, summary)
			}
			return nil
		},
	}

	f.registerThresholds(cmd)
	return cmd
}

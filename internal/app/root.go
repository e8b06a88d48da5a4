package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/pulsebar/internal/config"
)

// NewRootCmd creates the pulsebar command.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "pulsebar [flags] <glob>",
		Short: "Heartbeat status line for growing log files",
		Long: `pulsebar watches every file matching a glob and draws a one-line bar that
drains as time passes without any of them growing.

The bar starts full and shrinks toward the decay side. Once the idle time
passes --warn it switches to the warn glyph, and at --critical it turns
solid. Any write to a matched file refills it.

Rotation (a new file at the same path) and truncation are handled; files
that disappear are simply forgotten.

Defaults can be kept in a YAML file (default: $XDG_CONFIG_HOME/pulsebar/config.yaml).
Command-line flags win over the file.`,
		Example: `  # Watch an application's logs
  pulsebar '/var/log/myapp/*.log'

  # Shorter thresholds, bar empties to the right
  pulsebar --warn 10 --critical 30 --decay right 'build/*.log'

  # Plain ASCII glyphs on a fixed-width line
  pulsebar --ok-glyph '#' --warn-glyph '+' --critical-glyph '!' --width 60 'logs/*.log'`,
		Args:          singlePattern,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd, opts)
		},
	}

	f.register(rootCmd)
	rootCmd.SuggestionsMinimumDistance = 2
	rootCmd.AddCommand(newFilesCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func singlePattern(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("expected one glob pattern, got %d arguments (quote the pattern so the shell does not expand it)", len(args))
	}
	return nil
}

// settingsFromFile loads built-in defaults overlaid with the defaults file.
// An explicitly named file must exist.
func settingsFromFile(path string, explicit bool) (config.Settings, error) {
	s := config.DefaultSettings()
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			// No home directory: run on built-in defaults.
			return s, nil
		}
		path = p
	}
	if explicit {
		if err := requireFile(path); err != nil {
			return s, err
		}
	}
	if err := config.LoadFile(path, &s); err != nil {
		return s, err
	}
	return s, nil
}

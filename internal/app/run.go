package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/pulsebar/internal/config"
	"github.com/blackwell-systems/pulsebar/internal/statusline"
	"github.com/blackwell-systems/pulsebar/internal/terminal"
	"github.com/blackwell-systems/pulsebar/internal/watcher"
)

// run draws the status line until SIGINT or SIGTERM.
func run(cmd *cobra.Command, opts config.Options) error {
	logger, closeLog, err := newLogger(opts.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	w, err := watcher.New(opts.Pattern)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.SetLogger(logger)

	env := terminal.EnvFromOS()
	env.Stderr = cmd.ErrOrStderr()
	cfg := terminal.Resolve(opts, env)
	logger.Debug("terminal_resolved",
		slog.String("profile", string(cfg.Profile)),
		slog.String("glyph_style", string(cfg.GlyphStyle)),
		slog.String("color_mode", string(cfg.ColorMode)),
		slog.Int("symbol_width", cfg.SymbolWidth))

	loopOpts := []statusline.Option{
		statusline.WithWriter(cmd.OutOrStdout()),
		statusline.WithLogger(logger),
	}
	if opts.FSEvents {
		n, err := watcher.NewNotifier(opts.Pattern)
		if err != nil {
			// Polling alone still works.
			fmt.Fprintf(cmd.ErrOrStderr(), "pulsebar: filesystem events unavailable: %v\n", err)
		} else {
			loopOpts = append(loopOpts, statusline.WithWaker(n))
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return statusline.New(opts, cfg, w, loopOpts...).Run(ctx)
}

// newLogger returns a debug logger writing to path, or a discarding logger
// when path is empty.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

// Package statusline drives the heartbeat: it polls for log growth, renders
// the bar and redraws it in place until the context is cancelled.
package statusline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/muesli/termenv"

	"github.com/blackwell-systems/pulsebar/internal/config"
	"github.com/blackwell-systems/pulsebar/internal/output"
	"github.com/blackwell-systems/pulsebar/internal/terminal"
)

// Scanner reports whether any watched file grew since the previous call.
type Scanner interface {
	ScanForGrowth() bool
}

// Waker delivers early wake-ups between ticks.
type Waker interface {
	Wake() <-chan struct{}
	Errors() <-chan error
	Close() error
}

// State is the loop's lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Loop redraws the status line once per interval.
type Loop struct {
	opts    config.Options
	cfg     terminal.Config
	scanner Scanner
	waker   Waker

	out       io.Writer
	in        io.Reader
	logger    *slog.Logger
	now       func() time.Time
	columns   func() int
	subscribe func(raise func()) (release func())

	state        atomic.Int32
	pendingClear atomic.Bool

	// The input reader outlives a run: a blocked read cannot be cancelled,
	// so one reader serves every run and is ignored in between.
	inputOnce sync.Once
	listening atomic.Bool

	idleStart time.Time
	prevWidth int
	barState  terminal.State
}

// Option configures a Loop.
type Option func(*Loop)

// WithWriter sets where the status line is drawn. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(l *Loop) { l.out = w }
}

// WithInput sets a line source whose lines request a full clear. By default
// stdin is used when it is a terminal.
func WithInput(r io.Reader) Option {
	return func(l *Loop) { l.in = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// WithColumns replaces live terminal size detection. It is ignored when the
// options fix a width.
func WithColumns(fn func() int) Option {
	return func(l *Loop) { l.columns = fn }
}

// WithWaker lets filesystem events end the wait early. The loop closes it.
func WithWaker(w Waker) Option {
	return func(l *Loop) { l.waker = w }
}

// WithLogger sets the debug logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithResizeSubscription replaces the terminal resize hook. subscribe must
// call raise on every resize and return a func that unsubscribes.
func WithResizeSubscription(subscribe func(raise func()) (release func())) Option {
	return func(l *Loop) { l.subscribe = subscribe }
}

// New returns a loop that draws cfg's rendering of opts, fed by scanner.
func New(opts config.Options, cfg terminal.Config, scanner Scanner, options ...Option) *Loop {
	l := &Loop{
		opts:      opts,
		cfg:       cfg,
		scanner:   scanner,
		out:       os.Stdout,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
		subscribe: subscribeResize,
	}
	if output.ReaderIsTTY(os.Stdin) {
		l.in = os.Stdin
	}
	for _, opt := range options {
		opt(l)
	}
	if l.columns == nil {
		l.columns = func() int { return terminal.Columns(fdOf(l.out)) }
	}
	return l
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// RequestClear asks for a full-screen clear before the next draw. It is safe
// to call from any goroutine.
func (l *Loop) RequestClear() {
	l.pendingClear.Store(true)
}

// Run draws until ctx is cancelled, which returns nil. Write failures and
// filesystem watch errors end the run with an error. The cursor is restored
// and a newline written on every exit path.
func (l *Loop) Run(ctx context.Context) error {
	l.setState(StateRunning)
	l.idleStart = l.now()
	l.prevWidth = 0
	l.barState = terminal.StateOK

	term := termenv.NewOutput(l.out)
	cursorHidden := false
	if l.opts.HideCursor && l.cfg.CursorHide && output.WriterIsTTY(l.out) {
		term.HideCursor()
		cursorHidden = true
	}

	release := l.subscribe(l.RequestClear)
	l.listening.Store(true)
	if l.in != nil {
		l.inputOnce.Do(func() { go l.watchInput(l.in) })
	}

	defer func() {
		l.listening.Store(false)
		release()
		if l.waker != nil {
			if err := l.waker.Close(); err != nil {
				l.logger.Debug("waker_close_failed", slog.String("error", err.Error()))
			}
		}
		if cursorHidden {
			term.ShowCursor()
		}
		fmt.Fprintln(l.out)
		l.setState(StateStopped)
	}()

	for {
		if err := l.tick(term); err != nil {
			return err
		}
		done, err := l.wait(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (l *Loop) tick(term *termenv.Output) error {
	if l.scanner.ScanForGrowth() {
		l.idleStart = l.now()
		l.logger.Debug("growth_observed")
	}

	if l.pendingClear.Swap(false) {
		term.ClearScreen()
		l.prevWidth = 0
	}

	cols := l.opts.Width
	if cols <= 0 {
		cols = l.columns()
	}

	line := output.Render(l.opts, l.now().Sub(l.idleStart), cols, &l.cfg)
	padding := max(0, l.prevWidth-line.Width)
	if _, err := io.WriteString(l.out, l.cfg.DrawPrefix+line.Text+strings.Repeat(" ", padding)); err != nil {
		return fmt.Errorf("write status line: %w", err)
	}
	l.prevWidth = line.Width

	if line.State != l.barState {
		l.logger.Debug("bar_state_changed",
			slog.String("from", l.barState.String()),
			slog.String("to", line.State.String()))
		l.barState = line.State
	}
	return nil
}

// wait blocks for one interval. It reports done when ctx is cancelled.
func (l *Loop) wait(ctx context.Context) (bool, error) {
	var wake <-chan struct{}
	var errs <-chan error
	if l.waker != nil {
		wake = l.waker.Wake()
		errs = l.waker.Errors()
	}

	timer := time.NewTimer(l.opts.Interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		l.setState(StateDraining)
		return true, nil
	case <-timer.C:
		return false, nil
	case <-wake:
		l.logger.Debug("woken_early")
		return false, nil
	case err := <-errs:
		return true, fmt.Errorf("filesystem events: %w", err)
	}
}

// watchInput requests a clear for every line read from r while a run is in
// progress. It returns at EOF or on a read error.
func (l *Loop) watchInput(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if l.listening.Load() {
			l.RequestClear()
		}
	}
}

func (l *Loop) setState(s State) {
	prev := State(l.state.Swap(int32(s)))
	if prev != s {
		l.logger.Debug("loop_state_changed",
			slog.String("from", prev.String()),
			slog.String("to", s.String()))
	}
}

// fdOf returns w's descriptor, or an invalid one for non-file writers.
func fdOf(w io.Writer) uintptr {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}

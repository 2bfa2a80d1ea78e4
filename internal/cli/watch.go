package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/sentiscope/internal/config"
	"github.com/yildizm/sentiscope/internal/emoji"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-analyze a file every time it is written",
		Long: `Analyze a text file, then analyze it again whenever it changes.

Uses file system notifications to detect writes. Writes that leave the
content unchanged are skipped. Press Ctrl+C to stop watching.

Examples:
  sentiscope watch draft.txt
  sentiscope watch -o json notes.md`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	if err := validateFilePath(filename); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	s, err := newSession(cfg, cfg.Client.Timeout, GetLogger("watch"))
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if isVerbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Watching file: %s\n", emoji.GetEmoji("watch"), filename)
		fmt.Fprintf(cmd.ErrOrStderr(), "Press Ctrl+C to stop...\n\n")
	}

	w := &fileWatch{
		filename: filename,
		session:  s,
		cfg:      cfg,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
	}
	w.analyze(ctx)

	return w.loop(ctx, watcher.Events, watcher.Errors)
}

// fileWatch re-analyzes one file. It remembers the last text it sent so
// that metadata-only writes do not cost a request.
type fileWatch struct {
	filename string
	session  *session
	cfg      *config.Config
	out      io.Writer
	errOut   io.Writer

	lastText string
	analyzed bool
}

// loop runs until ctx is canceled or the watcher closes its channels.
func (w *fileWatch) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			if isVerbose() {
				fmt.Fprintf(w.errOut, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				w.analyze(ctx)
			}

		case err, ok := <-errs:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fmt.Fprintf(w.errOut, "%s Watcher error: %v\n", emoji.GetEmoji("warning"), err)
		}
	}
}

// analyze reads the file and prints a report, or a one-line error. It
// reports whether a request was made.
func (w *fileWatch) analyze(ctx context.Context) bool {
	text, err := readTextFile(w.filename)
	if err != nil {
		fmt.Fprintf(w.errOut, "%s %v\n", emoji.GetEmoji("error"), err)
		return false
	}

	if w.analyzed && text == w.lastText {
		return false
	}

	if strings.TrimSpace(text) == "" {
		w.lastText, w.analyzed = text, true
		fmt.Fprintf(w.errOut, "%s %s is empty, waiting for text\n", emoji.GetEmoji("info"), w.filename)
		return false
	}

	// A failed request is not recorded, so saving the same text retries it.
	report, err := w.session.analyze(ctx, text, w.filename)
	if err != nil {
		fmt.Fprintf(w.errOut, "%s %v\n", emoji.GetEmoji("error"), err)
		return true
	}
	w.lastText, w.analyzed = text, true

	data, err := renderReport(w.cfg, report, colorEnabled(w.out))
	if err != nil {
		fmt.Fprintf(w.errOut, "%s %v\n", emoji.GetEmoji("error"), err)
		return true
	}
	_, _ = w.out.Write(data)
	return true
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/yildizm/sentiscope/internal/client"
	"github.com/yildizm/sentiscope/internal/config"
	"github.com/yildizm/sentiscope/internal/formatter"
	"github.com/yildizm/sentiscope/internal/logger"
)

// maxInputBytes caps what is read from a file or stdin.
const maxInputBytes = 1 << 20

var (
	analyzeFile       string
	analyzeTimeout    time.Duration
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze the sentiment of a piece of text",
		Long: `Send text to the backend and print the sentiment it reports.

Text is taken from the arguments, from --file, or from stdin, in that order.
The result is printed with the --output format (text, json, markdown).

Examples:
  sentiscope analyze "I love this product"
  sentiscope analyze --file review.txt -o json
  echo "The service was slow" | sentiscope analyze`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read text from file")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "request timeout (overrides client.timeout, 0 means none)")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	text, source, err := readAnalyzeInput(cmd.InOrStdin(), args, analyzeFile)
	if err != nil {
		return err
	}

	timeout := cfg.Client.Timeout
	if cmd.Flag("timeout").Changed {
		timeout = analyzeTimeout
	}

	s, err := newSession(cfg, timeout, GetLogger("analyze"))
	if err != nil {
		return err
	}

	report, err := s.analyze(cmd.Context(), text, source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeOutputFile != "" {
		data, err := renderReport(cfg, report, false)
		if err != nil {
			return err
		}
		if err := os.WriteFile(analyzeOutputFile, data, 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if isVerbose() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Output written to %s\n", analyzeOutputFile)
		}
		return nil
	}

	data, err := renderReport(cfg, report, colorEnabled(out))
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// session is one Analyzer bound to the configured backend. The CLI
// commands drive it the same way the TUI and the web form do.
type session struct {
	analyzer *client.Analyzer
	endpoint string
	log      *logger.Logger
}

func newSession(cfg *config.Config, timeout time.Duration, log *logger.Logger) (*session, error) {
	if log == nil {
		log = logger.Discard()
	}

	c, err := client.New(client.Config{
		BaseURL: getBackendURL(cfg),
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		analyzer: client.NewAnalyzer(c, log),
		endpoint: c.Endpoint(),
		log:      log,
	}, nil
}

// analyze runs one submission. Failures come back as the message the
// Analyzer put in its error slot; the cause is logged in verbose mode.
func (s *session) analyze(ctx context.Context, text, source string) (*formatter.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s.analyzer.SetText(text)

	start := time.Now()
	result, err := s.analyzer.Submit(ctx)
	if err != nil {
		s.log.DebugWithFields("analysis failed", []logger.Field{
			logger.F("source", source),
			logger.Error(err),
		})
		return nil, errors.New(s.analyzer.State().Error)
	}

	duration := time.Since(start)
	s.log.DebugWithFields("analysis complete", []logger.Field{
		logger.F("source", source),
		logger.F("sentiment", result.Sentiment),
		logger.Duration(duration),
	})

	return &formatter.Report{
		Result:     result,
		Source:     source,
		Backend:    s.endpoint,
		Duration:   duration,
		AnalyzedAt: time.Now(),
	}, nil
}

func renderReport(cfg *config.Config, report *formatter.Report, color bool) ([]byte, error) {
	f, err := formatter.New(getOutputFormat(cfg), color)
	if err != nil {
		return nil, err
	}
	data, err := f.Format(report)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

// readAnalyzeInput picks the text from args, then file, then stdin. An
// interactive stdin with nothing else given is an error rather than a hang.
func readAnalyzeInput(stdin io.Reader, args []string, file string) (text, source string, err error) {
	if len(args) > 0 {
		if file != "" {
			return "", "", fmt.Errorf("cannot combine text arguments with --file")
		}
		return strings.Join(args, " "), "args", nil
	}

	if file != "" {
		text, err := readTextFile(file)
		if err != nil {
			return "", "", err
		}
		return text, file, nil
	}

	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return "", "", fmt.Errorf("no text given: pass it as arguments, with --file, or on stdin")
	}

	text, err = readLimited(stdin, "stdin")
	if err != nil {
		return "", "", err
	}
	return text, "stdin", nil
}

// readLimited reads r whole, refusing input past maxInputBytes rather than
// analyzing a truncated text.
func readLimited(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) > maxInputBytes {
		return "", fmt.Errorf("%s is larger than %d bytes", name, maxInputBytes)
	}
	return string(data), nil
}

func readTextFile(path string) (string, error) {
	if err := validateFilePath(path); err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}

	// #nosec G304 - path is validated above
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readLimited(f, path)
}

// validateFilePath rejects empty paths, traversal and directories.
func validateFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	for _, part := range strings.Split(filepath.ToSlash(cleanPath), "/") {
		if part == ".." {
			return fmt.Errorf("path traversal not allowed")
		}
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, must be a file", path)
	}

	return nil
}

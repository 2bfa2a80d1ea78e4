package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/yildizm/sentiscope/internal/config"
	"github.com/yildizm/sentiscope/internal/emoji"
	"github.com/yildizm/sentiscope/internal/logger"
	"github.com/yildizm/sentiscope/internal/ui"
)

var (
	cfgFile    string
	verbose    bool
	noColor    bool
	noEmoji    bool
	outputFmt  string
	backendURL string

	configMu     sync.Mutex
	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sentiscope",
		Short: "Sentiment analysis from the terminal, the browser or a script",
		Long: `SentiScope classifies a piece of text as positive, negative or neutral.

It ships the backend (an LLM or an offline VADER classifier behind POST /analyze),
a web form, an interactive terminal UI and one-shot commands for scripts.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
			// A broken config file is reported by the command that needs it.
			_, _ = GetGlobalConfig()
			logger.SetOutput(os.Stderr, !colorEnabled(os.Stderr))
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown)")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "backend URL (overrides client.backend_url)")

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SentiScope %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig loads the configuration once per process. Commands that
// need to report a broken config file call it and return the error.
func GetGlobalConfig() (*config.Config, error) {
	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	globalConfig = cfg
	return cfg, nil
}

// GetLogger returns a component logger that follows --verbose.
func GetLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// Global helpers
func isVerbose() bool {
	if verbose {
		return true
	}
	configMu.Lock()
	defer configMu.Unlock()
	return globalConfig != nil && globalConfig.Output.Verbose
}

// getOutputFormat prefers --output over output.default_format.
func getOutputFormat(cfg *config.Config) string {
	if outputFmt != "" {
		return outputFmt
	}
	return cfg.Output.DefaultFormat
}

// getBackendURL prefers --backend over client.backend_url.
func getBackendURL(cfg *config.Config) string {
	if backendURL != "" {
		return backendURL
	}
	return cfg.Client.BackendURL
}

// colorEnabled applies --no-color, NO_COLOR and output.color_mode, in that
// order. "auto" colors terminals only.
func colorEnabled(w io.Writer) bool {
	if noColor || ui.IsColorDisabled() {
		return false
	}

	mode := "auto"
	configMu.Lock()
	if globalConfig != nil && globalConfig.Output.ColorMode != "" {
		mode = globalConfig.Output.ColorMode
	}
	configMu.Unlock()

	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}

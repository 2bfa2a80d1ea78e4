package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/sentiscope/internal/logger"
	"github.com/yildizm/sentiscope/internal/ui"
)

var tuiTheme string

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI",
		Long: `Open a full-screen editor that sends its text to the backend.

Keys:
  enter, ctrl+s   analyze
  alt+enter       new line
  ctrl+l          clear
  esc, ctrl+c     quit`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	cmd.Flags().StringVar(&tuiTheme, "theme", "", fmt.Sprintf("color theme %v (overrides ui.theme)", ui.GetAvailableThemes()))

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	theme := cfg.UI.Theme
	if tuiTheme != "" {
		theme = tuiTheme
	}
	if theme != "" && !ui.SetThemeByName(theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, ui.GetAvailableThemes())
	}

	// Log lines would tear the alternate screen; failures show in the UI.
	s, err := newSession(cfg, cfg.Client.Timeout, logger.Discard())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ui.Run(ctx, s.analyzer)
}

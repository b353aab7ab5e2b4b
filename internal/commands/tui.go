package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shipdeck/shipdeck-cli/internal/api"
	"github.com/shipdeck/shipdeck-cli/internal/config"
	"github.com/shipdeck/shipdeck-cli/internal/errors"
	"github.com/shipdeck/shipdeck-cli/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive Terminal User Interface",
	Long: `Launch the Shipdeck TUI for an interactive experience.

The TUI provides:
- Multi-select order lists with status-aware bulk actions
- A guided ship wizard (rates, courier choice, confirmation)
- CSV mapping import with preview and per-row results
- Vim-style keybindings for efficient navigation`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	secureConfig, err := config.LoadSecureConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if secureConfig.APIKey == "" {
		return errors.NoAPIKeyError()
	}

	client := api.NewClient(secureConfig.APIKey, secureConfig.APIURL, secureConfig.Debug)
	app := tui.NewApp(client)

	return app.Run()
}

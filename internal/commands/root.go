// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shipdeck/shipdeck-cli/internal/config"
	"github.com/shipdeck/shipdeck-cli/internal/errors"
	"github.com/shipdeck/shipdeck-cli/pkg/version"
)

var (
	cfg     *config.SecureConfig
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "shipdeck",
	Short: "Shipdeck CLI - order and returns operations for marketplace sellers",
	Long: `Shipdeck CLI lets you manage marketplace orders, process returns,
import SKU mappings and trigger channel syncs from the terminal.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.LoadSecureConfig()
		if err != nil {
			// Don't fail if config doesn't exist yet
			cfg = &config.SecureConfig{
				Config: &config.Config{},
			}
		}

		if debug {
			cfg.Debug = true
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errorMsg := errors.FormatUserError(err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorMsg)

		// Add helpful hints for common errors
		if errors.IsAuthError(err) {
			fmt.Fprintf(os.Stderr, "\nHint: Run 'shipdeck login' to configure authentication\n")
		} else if errors.IsNetworkError(err) {
			fmt.Fprintf(os.Stderr, "\nHint: Check your internet connection and try again\n")
		} else if errors.IsConflict(err) {
			fmt.Fprintf(os.Stderr, "\nHint: The record changed on the server. Refresh the list and retry\n")
		}

		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.shipdeck/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(newOrdersCommand())
	rootCmd.AddCommand(newReturnsCommand())
	rootCmd.AddCommand(newMappingsCommand())
	rootCmd.AddCommand(newSyncCommand())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetBuildInfo())
	},
}

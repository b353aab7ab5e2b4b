package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shipdeck/shipdeck-cli/internal/config"
	"github.com/shipdeck/shipdeck-cli/internal/utils"
)

const (
	configKeyAPIKey = "api-key"
	configKeyAPIURL = "api-url"
	configKeyDebug  = "debug"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Shipdeck configuration",
	Long:  `Manage Shipdeck CLI configuration including API keys and endpoints.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		cfg, err := config.LoadConfig()
		if err != nil {
			cfg = &config.Config{}
		}

		switch key {
		case configKeyAPIKey, "api_key":
			// API keys go to secure storage, not the plain config file
			storage := config.NewSecureStorage()
			if err := storage.SaveAPIKey(value); err != nil {
				return fmt.Errorf("failed to save API key: %w", err)
			}
			fmt.Println("API key configured successfully")
			return nil
		case configKeyAPIURL, "api_url":
			cfg.APIURL = value
			fmt.Printf("API URL set to: %s\n", value)
		case configKeyDebug:
			cfg.Debug = value == "true"
			fmt.Printf("Debug mode: %v\n", cfg.Debug)
		default:
			return fmt.Errorf("unknown configuration key: %s", key)
		}

		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secureConfig, err := config.LoadSecureConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if len(args) == 0 {
			fmt.Printf("API URL: %s\n", secureConfig.APIURL)
			if secureConfig.APIKey != "" {
				fmt.Printf("API Key: %s\n", utils.MaskAPIKey(secureConfig.APIKey))
			} else {
				fmt.Println("API Key: (not set)")
			}
			fmt.Printf("Debug: %v\n", secureConfig.Debug)
			return nil
		}

		switch args[0] {
		case configKeyAPIKey, "api_key":
			if secureConfig.APIKey != "" {
				fmt.Println(utils.MaskAPIKey(secureConfig.APIKey))
			} else {
				fmt.Println("(not set)")
			}
		case configKeyAPIURL, "api_url":
			fmt.Println(secureConfig.APIURL)
		case configKeyDebug:
			fmt.Println(secureConfig.Debug)
		default:
			return fmt.Errorf("unknown configuration key: %s", args[0])
		}

		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}

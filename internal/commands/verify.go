package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shipdeck/shipdeck-cli/internal/api"
	"github.com/shipdeck/shipdeck-cli/internal/config"
	"github.com/shipdeck/shipdeck-cli/internal/errors"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify current API key",
	Long:  `Verify that your stored API key is valid and check your account status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		secureConfig, err := config.LoadSecureConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if secureConfig.APIKey == "" {
			return errors.NoAPIKeyError()
		}

		client := api.NewClient(secureConfig.APIKey, secureConfig.APIURL, secureConfig.Debug)
		userInfo, err := client.VerifyAuth(cmd.Context())
		if err != nil {
			return fmt.Errorf("API key verification failed: %w", err)
		}

		fmt.Println("✓ API key is valid")
		fmt.Printf("  Email: %s\n", userInfo.Email)
		if userInfo.Tenant != "" {
			fmt.Printf("  Tenant: %s\n", userInfo.Tenant)
		}
		if userInfo.Plan != "" {
			fmt.Printf("  Plan: %s\n", userInfo.Plan)
		}

		return nil
	},
}

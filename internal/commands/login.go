package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shipdeck/shipdeck-cli/internal/api"
	"github.com/shipdeck/shipdeck-cli/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login [api-key]",
	Short: "Configure your API key securely",
	Long: `Configure your Shipdeck API key using secure storage.
The key will be stored in your system keyring when available,
or in an encrypted file as a fallback.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Welcome to Shipdeck CLI!")
		fmt.Printf("Get your API key at: %s\n", config.GetURLs().APIKeysURL)
		fmt.Println()

		// Key may be passed as an argument (for CI/CD)
		var apiKey string
		if len(args) > 0 {
			apiKey = args[0]
		} else {
			fmt.Print("Enter your API key: ")

			bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				// Fallback to regular input if terminal read fails
				reader := bufio.NewReader(os.Stdin)
				input, _ := reader.ReadString('\n')
				apiKey = strings.TrimSpace(input)
			} else {
				apiKey = string(bytePassword)
				fmt.Println() // Add newline after hidden input
			}
		}

		if apiKey == "" {
			return fmt.Errorf("API key cannot be empty")
		}

		// Verify the API key first
		client := api.NewClient(apiKey, cfg.APIURL, cfg.Debug)
		userInfo, err := client.VerifyAuth(cmd.Context())
		if err != nil {
			return fmt.Errorf("invalid API key: %w", err)
		}

		secureConfig, err := config.LoadSecureConfig()
		if err != nil {
			secureConfig = &config.SecureConfig{
				Config: &config.Config{},
			}
		}

		if err := secureConfig.SaveAPIKey(apiKey); err != nil {
			return fmt.Errorf("failed to save API key: %w", err)
		}

		storageInfo := secureConfig.GetStorageInfo()
		fmt.Println()
		fmt.Println("✓ API key validated and stored successfully!")
		fmt.Printf("  Email: %s\n", userInfo.Email)
		if userInfo.Tenant != "" {
			fmt.Printf("  Tenant: %s\n", userInfo.Tenant)
		}
		if userInfo.Plan != "" {
			fmt.Printf("  Plan: %s\n", userInfo.Plan)
		}

		fmt.Println()
		switch storageInfo["source"] {
		case "system_keyring":
			fmt.Printf("  Storage: %s (secure)\n", storageInfo["keyring_type"])
		case "encrypted_file":
			fmt.Println("  Storage: Encrypted file (secure)")
		case "environment":
			fmt.Println("  Storage: Environment variable")
		default:
			fmt.Println("  Storage: Encrypted file (secure fallback)")
		}

		return nil
	},
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/models"
	"github.com/spf13/cobra"
)

var configureList bool

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure provider credentials",
	Long:  `Configure provider API keys and the default model, stored in the environment file.`,
	Run: func(cmd *cobra.Command, args []string) {
		if configureList {
			listConfiguration()
			return
		}

		envPath := config.GetEnvPath()
		envConfig := config.LoadEnvConfigOrDefault(envPath)
		reader := bufio.NewReader(os.Stdin)

		registered := models.ListRegisteredProviders()

		var provider string
		for {
			fmt.Printf("Enter provider (%s): ", strings.Join(registered, "/"))
			provider, _ = reader.ReadString('\n')
			provider = strings.TrimSpace(provider)
			if containsString(registered, provider) {
				break
			}
			fmt.Printf("Invalid provider. Please enter one of: %s\n", strings.Join(registered, ", "))
		}

		if provider == "ollama" {
			fmt.Print("Enter Ollama host (blank for http://localhost:11434): ")
			host, _ := reader.ReadString('\n')
			host = strings.TrimSpace(host)
			envConfig.AddProvider(provider, config.Provider{APIKey: host})
		} else {
			fmt.Print("Enter API key (input hidden): ")
			keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				fmt.Printf("Error reading API key: %v\n", err)
				return
			}
			apiKey := strings.TrimSpace(string(keyBytes))
			if apiKey == "" {
				fmt.Println("No API key entered, nothing saved.")
				return
			}
			envConfig.AddProvider(provider, config.Provider{APIKey: apiKey})
		}

		fmt.Print("Set as default model? Enter a model name or leave blank: ")
		modelName, _ := reader.ReadString('\n')
		modelName = strings.TrimSpace(modelName)
		if modelName != "" {
			envConfig.DefaultModel = provider + "/" + modelName
		}

		if err := config.SaveEnvConfig(envPath, envConfig); err != nil {
			fmt.Printf("Error saving configuration: %v\n", err)
			return
		}
		fmt.Printf("Configuration saved to %s\n", envPath)
	},
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func listConfiguration() {
	envPath := config.GetEnvPath()
	envConfig, err := config.LoadEnvConfig(envPath)
	if err != nil {
		fmt.Printf("No configuration found at %s\n", envPath)
		return
	}

	if len(envConfig.Providers) == 0 {
		fmt.Println("No providers configured.")
		return
	}

	fmt.Printf("Configuration from %s:\n\n", envPath)
	for name, provider := range envConfig.Providers {
		if provider == nil || provider.APIKey == "" {
			fmt.Printf("  %s: no credential\n", name)
			continue
		}
		fmt.Printf("  %s: configured\n", name)
	}
	if envConfig.DefaultModel != "" {
		fmt.Printf("\nDefault model: %s\n", envConfig.DefaultModel)
	}
}

func init() {
	configureCmd.Flags().BoolVar(&configureList, "list", false, "List configured providers")
	rootCmd.AddCommand(configureCmd)
}

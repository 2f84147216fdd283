/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/pokepack/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a pokepack configuration",
	Long: `Create a configuration file with a freshly generated API key.

This command will:
- Write the configuration (default ~/.config/pokepack/config.yaml)
- Generate a 256-bit API key for the REST API
- Refuse to overwrite an existing file unless --force is given

Examples:
  pokepack init
  pokepack init --config ./pokepack.yaml --data-dir ./data`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip the root command's runtime initialization for init
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to overwrite.\n", configPath)
			return nil
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return err
		}

		cmd.Printf("✅ Created configuration at %s\n", configPath)
		cmd.Printf("Data directory: %s\n", cfg.DataDir)
		cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  pokepack serve --config %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("data-dir", "", "Data directory for the team store (default ./data)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}

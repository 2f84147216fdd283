/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/pokepack/pkg/api"
	"github.com/ssargent/pokepack/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the pokepack REST API server.

Routes under /api/v1 require the X-API-Key header; /metrics and /swagger/
are open. Run 'pokepack init' first to generate a key, or pass --api-key.

Examples:
  pokepack serve
  pokepack serve --port 9000 --bind 0.0.0.0
  pokepack serve --config ./pokepack.yaml --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}

		cfg := *rt.cfg
		flags := cmd.Flags()
		if flags.Changed("port") {
			cfg.Port, _ = flags.GetInt("port")
		}
		if flags.Changed("bind") {
			cfg.Bind, _ = flags.GetString("bind")
		}
		if flags.Changed("api-key") {
			cfg.Security.APIKey, _ = flags.GetString("api-key")
		}
		if cfg.Security.APIKey == "" || cfg.Security.APIKey == config.AutoKey {
			return errors.New("no API key configured (run 'pokepack init' or pass --api-key)")
		}

		store, err := openTeamStore(rt)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx, rt.packer, store, api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.Security.APIKey,
			Format: cfg.Format,
		}, rt.logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (default from config)")
	serveCmd.Flags().String("bind", "", "Address to bind (default from config)")
	serveCmd.Flags().String("api-key", "", "API key for client authentication (default from config)")
}

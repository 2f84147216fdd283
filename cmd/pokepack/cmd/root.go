/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/pokepack/pkg/config"
	"github.com/ssargent/pokepack/pkg/di"
	"github.com/ssargent/pokepack/pkg/logging"
	"github.com/ssargent/pokepack/pkg/pack"
)

var container *di.Container

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

type contextKey string

const runtimeKey contextKey = "runtime"

// runtime is what PersistentPreRunE hands to every subcommand.
type runtime struct {
	cfg        *config.Config
	configPath string
	logger     *zap.Logger
	packer     *pack.Packer
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pokepack",
	Short: "pokepack - compact team paste codec",
	Long: `pokepack packs team pastes into fixed 21-byte records per creature
and renders them as hex or base64 text, one record per line.

It can also keep packed teams in a local store and serve everything over
a small REST API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		// Store in command context
		cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey, rt))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/pokepack/config.yaml)")
	rootCmd.PersistentFlags().String("vocab-dir", "", "Directory with vocabulary files (default: embedded)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject values that do not fit their packed field")
}

// loadRuntime reads the config (if any), applies flag overrides and builds
// the logger and packer.
func loadRuntime(cmd *cobra.Command) (*runtime, error) {
	if container == nil {
		return nil, errors.New("dependency container not initialized")
	}

	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("vocab-dir") {
		cfg.VocabDir, _ = flags.GetString("vocab-dir")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("strict") {
		cfg.StrictRanges, _ = flags.GetBool("strict")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// the server logs JSON; interactive commands keep the console encoder
	logFormat := "console"
	if cmd.Name() == "serve" {
		logFormat = "json"
	}
	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: logFormat})
	if err != nil {
		return nil, err
	}
	logging.SetLogger(logger)

	d, err := container.GetDexProvider().Dex(cfg.VocabDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	logger.Debug("vocabulary loaded", zap.String("dir", cfg.VocabDir), zap.String("config", configPath))

	return &runtime{
		cfg:        cfg,
		configPath: configPath,
		logger:     logger,
		packer:     pack.New(d, pack.WithStrictRanges(cfg.StrictRanges), pack.WithLogger(logger)),
	}, nil
}

// loadConfig loads --config, or the default path when it exists, or the
// built-in defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	configPath, _ := cmd.Flags().GetString("config")
	explicit := configPath != ""
	if !explicit {
		configPath = config.GetDefaultConfigPath()
	}

	if !config.ConfigExists(configPath) {
		if explicit {
			return nil, "", fmt.Errorf("config file does not exist: %s", configPath)
		}
		return config.DefaultConfig(), configPath, nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, "", err
	}
	return cfg, configPath, nil
}

func runtimeFrom(cmd *cobra.Command) (*runtime, error) {
	rt, ok := cmd.Context().Value(runtimeKey).(*runtime)
	if !ok {
		return nil, errors.New("runtime not found in context")
	}
	return rt, nil
}

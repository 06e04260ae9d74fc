package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coolify-tools/docker-status-monitor/internal/app"
	"github.com/coolify-tools/docker-status-monitor/internal/config"
	"github.com/coolify-tools/docker-status-monitor/internal/logger"
)

type contextKey string

const configKey = contextKey("config")

var rootCmd = &cobra.Command{
	Use:   "docker-status-monitor",
	Short: "Track Coolify container status changes and deliver webhooks",
	Long:  "A monitor that polls Docker for Coolify-labeled containers, tracks status transitions between polls, and posts each change to a webhook endpoint.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		if err := config.InitConfig(configFile); err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx := context.WithValue(cmd.Context(), configKey, cfg)
		cmd.SetContext(ctx)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration.
		cfg := cmd.Context().Value(configKey).(*config.Config)

		// Set up logger.
		logInstance := logger.SetupLogger(&cfg.Logging)

		// Create the application.
		monitorApp, err := app.New(cfg, logInstance)
		if err != nil {
			return fmt.Errorf("failed to create app: %w", err)
		}

		return runUntilSignalled(monitorApp, logInstance)
	},
}

// runUntilSignalled runs the application until SIGINT or SIGTERM arrives.
// Cancellation after a signal is a clean exit, not an error.
func runUntilSignalled(a application, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defer func() {
		if err := a.Close(); err != nil {
			log.Error().Err(err).Msg("Error during shutdown")
		}
	}()

	// Listen for OS signals.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Msgf("Received signal: %v", sig)
		cancel()
	}()

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().Int("monitor-interval-in-seconds", 5, "seconds between container polls")
	rootCmd.PersistentFlags().String("docker-socket", "", "docker daemon socket, e.g. unix:///var/run/docker.sock")
	rootCmd.PersistentFlags().String("status-change-webhook-url", "", "endpoint that receives status change events")
	rootCmd.PersistentFlags().String("coolify-monitor-label", "", "label key that must equal \"true\" for a container to be monitored")
	rootCmd.PersistentFlags().String("coolify-project-name", "", "coolify.projectName label value to match")
	rootCmd.PersistentFlags().String("coolify-environment-name", "production", "coolify.environmentName label value to match")
	rootCmd.PersistentFlags().String("log-level", "INFO", "set log level (e.g. INFO, DEBUG, WARN)")

	viper.BindPFlag("app.monitor_interval_in_seconds", rootCmd.PersistentFlags().Lookup("monitor-interval-in-seconds"))
	viper.BindPFlag("app.docker_socket", rootCmd.PersistentFlags().Lookup("docker-socket"))
	viper.BindPFlag("app.status_change_webhook_url", rootCmd.PersistentFlags().Lookup("status-change-webhook-url"))
	viper.BindPFlag("app.coolify_monitor_label", rootCmd.PersistentFlags().Lookup("coolify-monitor-label"))
	viper.BindPFlag("app.coolify_project_name", rootCmd.PersistentFlags().Lookup("coolify-project-name"))
	viper.BindPFlag("app.coolify_environment_name", rootCmd.PersistentFlags().Lookup("coolify-environment-name"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Execution error: %v\n", err)
		os.Exit(1)
	}
}

package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coolify-tools/docker-status-monitor/internal/config"
	"github.com/coolify-tools/docker-status-monitor/internal/core"
	"github.com/coolify-tools/docker-status-monitor/internal/docker"
	"github.com/coolify-tools/docker-status-monitor/internal/notifier"
	dockerCli "github.com/docker/docker/client"
	"github.com/rs/zerolog"
)

type App struct {
	source  *docker.Source
	monitor *core.Monitor
	logger  zerolog.Logger
}

// New creates a new App by wiring up all dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	dockerClient, err := dockerCli.NewClientWithOpts(
		dockerCli.WithHost(cfg.App.DockerSocket),
		dockerCli.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}
	source := docker.NewSource(dockerClient, logger)

	httpClient := &http.Client{Timeout: cfg.App.CallTimeout()}
	webhook := notifier.NewWebhookNotifier(httpClient, cfg.App.WebhookURL, logger)

	monitor := core.NewMonitor(logger, &cfg.App, source, webhook)

	return &App{
		source:  source,
		monitor: monitor,
		logger:  logger,
	}, nil
}

// Run verifies the Docker daemon is reachable and starts the monitor loop.
// An unreachable daemon at startup is fatal; once the loop runs, daemon
// outages only skip cycles.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("Application starting")
	if err := a.source.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon not reachable: %w", err)
	}
	return a.monitor.Run(ctx)
}

func (a *App) Close() error {
	if err := a.source.Close(); err != nil {
		return fmt.Errorf("close docker source: %w", err)
	}
	return nil
}

package docker

import (
	"context"
	"fmt"

	"github.com/coolify-tools/docker-status-monitor/internal/domain"
	"github.com/docker/docker/api/types/container"
	"github.com/rs/zerolog"
)

// Source reads the current container inventory from the Docker daemon.
type Source struct {
	logger zerolog.Logger
	cli    dockerClient
}

func NewSource(cli dockerClient, logger zerolog.Logger) *Source {
	return &Source{
		logger: logger,
		cli:    cli,
	}
}

// Ping verifies that the Docker daemon is reachable.
func (s *Source) Ping(ctx context.Context) error {
	if _, err := s.cli.Ping(ctx); err != nil {
		return fmt.Errorf("pinging docker daemon: %w", err)
	}
	return nil
}

// Snapshot lists every container on the daemon, stopped ones included, and
// inspects each for its current state. A container whose inspect call fails
// is still returned, built from listing data with Error recording the
// failure.
func (s *Source) Snapshot(ctx context.Context) ([]domain.ContainerSnapshot, error) {
	containers, err := s.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("listing containers: %w", err)
	}

	snapshots := make([]domain.ContainerSnapshot, 0, len(containers))
	for _, c := range containers {
		info, inspectErr := s.cli.ContainerInspect(ctx, c.ID)
		var snapshot domain.ContainerSnapshot
		if inspectErr != nil {
			snapshot = fromSummary(c, inspectErr)
			s.logger.Warn().Err(inspectErr).Str("container_id", snapshot.ShortId()).Msg("Inspect failed, using listing data")
		} else {
			snapshot = fromInspect(c, info)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

// Close closes the underlying Docker client.
func (s *Source) Close() error {
	return s.cli.Close()
}

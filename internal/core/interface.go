package core

import (
	"context"

	"github.com/coolify-tools/docker-status-monitor/internal/domain"
)

type snapshotSource interface {
	Snapshot(ctx context.Context) ([]domain.ContainerSnapshot, error)
}

type eventNotifier interface {
	NotifyAll(ctx context.Context, events []domain.TransitionEvent)
}

package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coolify-tools/docker-status-monitor/internal/config"
	"github.com/coolify-tools/docker-status-monitor/internal/state"
	"github.com/coolify-tools/docker-status-monitor/internal/util"
	"github.com/rs/zerolog"
)

// Monitor owns the poll-filter-diff-notify cycle and the container state
// tracked across cycles.
type Monitor struct {
	logger   zerolog.Logger
	cfg      *config.AppConfig
	source   snapshotSource
	notifier eventNotifier
	store    *state.MemoryStore
	differ   *Differ
	criteria Criteria
}

func NewMonitor(logger zerolog.Logger, cfg *config.AppConfig, source snapshotSource, notifier eventNotifier) *Monitor {
	store := state.NewMemoryStore()
	return &Monitor{
		logger:   logger,
		cfg:      cfg,
		source:   source,
		notifier: notifier,
		store:    store,
		differ:   NewDiffer(store, logger),
		criteria: Criteria{
			MonitorLabel:    cfg.MonitorLabel,
			ProjectName:     cfg.ProjectName,
			EnvironmentName: cfg.EnvironmentName,
		},
	}
}

// Run executes the monitor loop until ctx is cancelled. The first cycle runs
// immediately to seed the baseline and log the starting statuses; after that
// one cycle runs per tick. Cancellation is honored between cycles only, so
// an in-flight cycle always completes its store update and deliveries.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info().
		Str("project", m.criteria.ProjectName).
		Str("environment", m.criteria.EnvironmentName).
		Str("monitor_label", m.criteria.MonitorLabel).
		Dur("interval", m.cfg.Interval()).
		Msg("Starting container status monitor")

	if err := m.runCycle(ctx); err != nil {
		m.logger.Error().Err(err).Msg("Initial snapshot failed")
	} else {
		m.logStatusReport()
	}

	ticker := time.NewTicker(m.cfg.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := m.runCycle(ctx); err != nil {
				m.logger.Error().Err(err).Msg("Cycle skipped")
			}
		case <-ctx.Done():
			m.logger.Info().Msg("Monitor shutting down")
			return ctx.Err()
		}
	}
}

// runCycle performs one poll-filter-diff-notify pass. Call contexts are
// detached from the loop context so shutdown never interrupts a cycle
// mid-flight; the call timeout still bounds every blocking operation. A
// snapshot failure aborts the cycle and leaves the store untouched.
func (m *Monitor) runCycle(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.cfg.CallTimeout())
	defer cancel()

	snapshots, err := m.source.Snapshot(callCtx)
	if err != nil {
		return fmt.Errorf("taking container snapshot: %w", err)
	}

	matched := FilterSnapshots(snapshots, m.criteria)
	m.logger.Debug().
		Int("total", len(snapshots)).
		Int("matched", len(matched)).
		Msg("Snapshot taken")

	events := m.differ.Diff(matched, time.Now().UTC())
	if len(events) == 0 {
		return nil
	}
	m.notifier.NotifyAll(context.WithoutCancel(ctx), events)
	return nil
}

// logStatusReport writes one line summarizing every tracked container, so
// the log shows the starting point before any transitions arrive.
func (m *Monitor) logStatusReport() {
	ids := m.store.Ids()
	if len(ids) == 0 {
		m.logger.Info().Msg("No containers currently match the monitor criteria")
		return
	}
	statuses := util.Map(ids, func(id string) string {
		entry, _ := m.store.Get(id)
		return fmt.Sprintf("%s=%s", entry.Snapshot.Name, entry.LastStatus)
	})
	m.logger.Info().
		Int("count", len(ids)).
		Str("statuses", strings.Join(statuses, ", ")).
		Msg("Initial container statuses")
}

package core

import (
	"sort"
	"time"

	"github.com/coolify-tools/docker-status-monitor/internal/domain"
	"github.com/coolify-tools/docker-status-monitor/internal/state"
	"github.com/rs/zerolog"
)

// Differ compares each cycle's observations against the tracked state and
// produces one transition event per changed container.
type Differ struct {
	logger zerolog.Logger
	store  *state.MemoryStore
}

func NewDiffer(store *state.MemoryStore, logger zerolog.Logger) *Differ {
	return &Differ{
		logger: logger,
		store:  store,
	}
}

// Diff applies one cycle's observations to the store. A container seen for
// the first time seeds a baseline entry without an event, so process startup
// does not notify for every already-running container. A changed status
// yields one event. A container tracked last cycle but absent now yields a
// transition to UNKNOWN and is evicted. After the call the store holds
// exactly the observed containers. Events are returned in ascending
// container id order.
func (d *Differ) Diff(observed []domain.ContainerSnapshot, now time.Time) []domain.TransitionEvent {
	var events []domain.TransitionEvent
	next := make(map[string]state.Entry, len(observed))

	for _, snapshot := range observed {
		status := domain.NormalizeStatus(snapshot.RawState)
		next[snapshot.Id] = state.Entry{LastStatus: status, Snapshot: snapshot}

		previous, tracked := d.store.Get(snapshot.Id)
		if !tracked {
			d.logger.Info().
				Str("container_id", snapshot.ShortId()).
				Str("name", snapshot.Name).
				Str("status", string(status)).
				Msg("Tracking new container")
			continue
		}
		if previous.LastStatus == status {
			continue
		}
		d.logger.Info().
			Str("container_id", snapshot.ShortId()).
			Str("name", snapshot.Name).
			Str("previous_status", string(previous.LastStatus)).
			Str("current_status", string(status)).
			Msg("Container status changed")
		events = append(events, domain.TransitionEvent{
			Container:      snapshot,
			PreviousStatus: previous.LastStatus,
			CurrentStatus:  status,
			DetectedAt:     now,
		})
	}

	// Containers tracked last cycle but missing from this one transition to
	// UNKNOWN, unless they were already UNKNOWN, in which case eviction is
	// silent: events always carry a real status change.
	for _, id := range d.store.Ids() {
		if _, stillPresent := next[id]; stillPresent {
			continue
		}
		entry, _ := d.store.Get(id)
		d.logger.Info().
			Str("container_id", entry.Snapshot.ShortId()).
			Str("name", entry.Snapshot.Name).
			Str("previous_status", string(entry.LastStatus)).
			Msg("Container no longer observed")
		if entry.LastStatus == domain.StatusUnknown {
			continue
		}
		events = append(events, domain.TransitionEvent{
			Container:      entry.Snapshot,
			PreviousStatus: entry.LastStatus,
			CurrentStatus:  domain.StatusUnknown,
			DetectedAt:     now,
		})
	}

	d.store.ReplaceAll(next)

	// One event per id per cycle, so ordering by id is total.
	sort.Slice(events, func(i, j int) bool {
		return events[i].Container.Id < events[j].Container.Id
	})
	return events
}

package domain

import "time"

// ContainerSnapshot is one container's observed state at a single poll.
// Snapshots are built fresh every cycle and never mutated.
type ContainerSnapshot struct {
	Id       string
	Name     string
	Image    string
	Labels   map[string]string
	Created  time.Time
	RawState string
	Error    string // non-empty when inspecting this container failed
}

// ShortId returns the 12-character id Docker tooling prints in logs.
func (c ContainerSnapshot) ShortId() string {
	if len(c.Id) <= 12 {
		return c.Id
	}
	return c.Id[:12]
}

// TransitionEvent records one detected status change for one container.
type TransitionEvent struct {
	Container      ContainerSnapshot
	PreviousStatus Status
	CurrentStatus  Status
	DetectedAt     time.Time
}

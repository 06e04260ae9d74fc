package domain

import "strings"

// Status is a normalized container lifecycle state.
type Status string

const (
	StatusUnknown    Status = "UNKNOWN"
	StatusCreated    Status = "CREATED"
	StatusRunning    Status = "RUNNING"
	StatusRestarting Status = "RESTARTING"
	StatusExited     Status = "EXITED"
	StatusPaused     Status = "PAUSED"
	StatusDead       Status = "DEAD"
	StatusRemoving   Status = "REMOVING"
)

// NormalizeStatus maps a raw Docker state string to a Status. The match is
// case-insensitive; unrecognized or empty input maps to StatusUnknown.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "created":
		return StatusCreated
	case "running":
		return StatusRunning
	case "restarting":
		return StatusRestarting
	case "exited":
		return StatusExited
	case "paused":
		return StatusPaused
	case "dead":
		return StatusDead
	case "removing":
		return StatusRemoving
	default:
		return StatusUnknown
	}
}

package notifier

import (
	"time"

	"github.com/coolify-tools/docker-status-monitor/internal/domain"
)

const statusChangeEventType = "container_status_change"

type containerInfo struct {
	Id      string            `json:"id"`
	Name    string            `json:"name"`
	Image   string            `json:"image"`
	Labels  map[string]string `json:"labels"`
	Created string            `json:"created"`
	Error   *string           `json:"error"`
}

type webhookPayload struct {
	EventType      string        `json:"event_type"`
	Timestamp      string        `json:"timestamp"`
	Container      containerInfo `json:"container"`
	PreviousStatus string        `json:"previous_status"`
	CurrentStatus  string        `json:"current_status"`
}

func toPayload(event domain.TransitionEvent) webhookPayload {
	c := event.Container
	info := containerInfo{
		Id:     c.Id,
		Name:   c.Name,
		Image:  c.Image,
		Labels: c.Labels,
	}
	if info.Labels == nil {
		info.Labels = map[string]string{}
	}
	if !c.Created.IsZero() {
		info.Created = c.Created.UTC().Format(time.RFC3339)
	}
	if c.Error != "" {
		errText := c.Error
		info.Error = &errText
	}
	return webhookPayload{
		EventType:      statusChangeEventType,
		Timestamp:      event.DetectedAt.UTC().Format(time.RFC3339),
		Container:      info,
		PreviousStatus: string(event.PreviousStatus),
		CurrentStatus:  string(event.CurrentStatus),
	}
}

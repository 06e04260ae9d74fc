package docker

import (
	"strings"
	"time"

	"github.com/coolify-tools/docker-status-monitor/internal/domain"
	"github.com/docker/docker/api/types/container"
)

// fromSummary builds a snapshot from listing data alone. It is the fallback
// when inspect fails; inspectErr, when non-nil, is recorded on the snapshot.
func fromSummary(c container.Summary, inspectErr error) domain.ContainerSnapshot {
	snapshot := domain.ContainerSnapshot{
		Id:       c.ID,
		Image:    c.Image,
		Labels:   c.Labels,
		Created:  time.Unix(c.Created, 0).UTC(),
		RawState: c.State,
	}
	if len(c.Names) > 0 {
		snapshot.Name = strings.TrimPrefix(c.Names[0], "/")
	}
	if inspectErr != nil {
		snapshot.Error = inspectErr.Error()
	}
	return snapshot
}

// fromInspect builds a snapshot from the inspect payload, keeping listing
// fields wherever the payload omits one.
func fromInspect(c container.Summary, info container.InspectResponse) domain.ContainerSnapshot {
	snapshot := fromSummary(c, nil)
	if info.ContainerJSONBase == nil {
		return snapshot
	}
	if info.Name != "" {
		snapshot.Name = strings.TrimPrefix(info.Name, "/")
	}
	if created, err := time.Parse(time.RFC3339Nano, info.Created); err == nil {
		snapshot.Created = created
	}
	if info.State != nil && info.State.Status != "" {
		snapshot.RawState = info.State.Status
	}
	if info.Config != nil {
		if info.Config.Image != "" {
			snapshot.Image = info.Config.Image
		}
		if info.Config.Labels != nil {
			snapshot.Labels = info.Config.Labels
		}
	}
	return snapshot
}

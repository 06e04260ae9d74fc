package core

import (
	"github.com/coolify-tools/docker-status-monitor/internal/domain"
	"github.com/coolify-tools/docker-status-monitor/internal/util"
)

const (
	// monitorEnabledValue is the only label value that opts a container in.
	monitorEnabledValue = "true"

	projectNameLabel     = "coolify.projectName"
	environmentNameLabel = "coolify.environmentName"
)

// Criteria describes which containers belong to the monitored deployment.
// Every label comparison is exact and case-sensitive; a container missing a
// label never matches, even when the criterion value is empty.
type Criteria struct {
	MonitorLabel    string
	ProjectName     string
	EnvironmentName string
}

// Matches reports whether the container's labels satisfy all three criteria.
func (c Criteria) Matches(snapshot domain.ContainerSnapshot) bool {
	monitor, ok := snapshot.Labels[c.MonitorLabel]
	if !ok || monitor != monitorEnabledValue {
		return false
	}
	project, ok := snapshot.Labels[projectNameLabel]
	if !ok || project != c.ProjectName {
		return false
	}
	environment, ok := snapshot.Labels[environmentNameLabel]
	return ok && environment == c.EnvironmentName
}

// FilterSnapshots keeps the snapshots that match the criteria.
func FilterSnapshots(snapshots []domain.ContainerSnapshot, criteria Criteria) []domain.ContainerSnapshot {
	return util.Filter(snapshots, criteria.Matches)
}

// Package api pkg/cloud/api/types.go

package api

import (
	"time"

	"github.com/pepwatch/pepwatch/pkg/models"
	"github.com/pepwatch/pepwatch/pkg/poller"
)

// SnapshotSource is what the API needs from the update coordinator.
type SnapshotSource interface {
	Snapshot() *models.Snapshot
	Available() bool
	State() poller.State
	FailureCount() int
	Subscribe() (<-chan *models.Snapshot, func())
}

// StatusResponse summarizes the coordinator for health checks.
type StatusResponse struct {
	Available    bool      `json:"available"`
	State        string    `json:"state"`
	FailureCount int       `json:"failure_count"`
	LastUpdate   time.Time `json:"last_update,omitempty"`
}

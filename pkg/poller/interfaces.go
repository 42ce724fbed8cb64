// Package poller pkg/poller/interfaces.go

package poller

import (
	"context"

	"github.com/pepwatch/pepwatch/pkg/models"
)

//go:generate mockgen -destination=mock_poller.go -package=poller github.com/pepwatch/pepwatch/pkg/poller Refresher

// Refresher produces one snapshot per cycle, merging over the previous
// one. includeSlow selects whether the slow-cadence sections run.
type Refresher interface {
	Refresh(ctx context.Context, prev *models.Snapshot, includeSlow bool) (*models.Snapshot, error)
}

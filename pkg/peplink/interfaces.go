// Package peplink pkg/peplink/interfaces.go

package peplink

import (
	"context"

	"github.com/pepwatch/pepwatch/pkg/models"
)

//go:generate mockgen -destination=mock_peplink.go -package=peplink github.com/pepwatch/pepwatch/pkg/peplink Client

// Client defines the authenticated interface to one router.
type Client interface {
	// EnsureSession returns once a valid session is held, logging in if
	// none exists or the held one has been invalidated.
	EnsureSession(ctx context.Context) error
	// Invalidate marks the held session expired. Idempotent.
	Invalidate()
	// GetWANStatus fetches the WAN connection table.
	GetWANStatus(ctx context.Context) ([]models.WANConnection, error)
	// GetClients fetches the connected client table.
	GetClients(ctx context.Context) ([]models.ClientDevice, error)
	// GetTrafficStats fetches lifetime and bandwidth counters per WAN.
	GetTrafficStats(ctx context.Context) (*models.TrafficStats, error)
	// GetFanSpeeds fetches fan entries from the unofficial system endpoint.
	GetFanSpeeds(ctx context.Context) ([]models.Fan, error)
	// GetThermalSensors fetches thermal sensor readings.
	GetThermalSensors(ctx context.Context) ([]models.ThermalSensor, error)
	// GetDeviceInfo fetches the device identity block.
	GetDeviceInfo(ctx context.Context) (*models.DeviceInfo, error)
	// GetLocation fetches GPS data, for models that carry a receiver.
	GetLocation(ctx context.Context) (*models.GPSLocation, error)
	// Close releases the session. The client is unusable afterwards.
	Close()
}

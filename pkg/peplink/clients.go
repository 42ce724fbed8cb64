// Package peplink pkg/peplink/clients.go

package peplink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pepwatch/pepwatch/pkg/models"
)

// GetClients implements Client. An entry present in the table is
// connected; a device that disappears between cycles is "away" for
// tracking purposes, which is the consumer's call, not ours.
func (c *RouterClient) GetClients(ctx context.Context) ([]models.ClientDevice, error) {
	endpoint := officialEndpoint("status.client")

	raw, err := c.apiGet(ctx, "clients", endpoint)
	if err != nil {
		return nil, err
	}

	var list clientList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, &APIError{Op: "clients", Endpoint: endpoint, Wrapped: fmt.Errorf("%w: %w", ErrParse, err)}
	}

	clients := make([]models.ClientDevice, 0, len(list.List))
	for i := range list.List {
		clients = append(clients, normalizeClient(&list.List[i]))
	}

	return clients, nil
}

func normalizeClient(entry *clientEntry) models.ClientDevice {
	name := entry.Name
	if name == "" {
		name = entry.Hostname
	}

	if name == "" {
		name = "Unknown Device"
	}

	// Presence in the table implies connected unless the router says
	// otherwise.
	active := true
	if entry.Active != nil {
		active = *entry.Active
	}

	device := models.ClientDevice{
		MAC:       entry.MAC,
		IP:        entry.IP,
		Name:      name,
		Type:      entry.ConnectionType,
		Active:    active,
		Interface: entry.Interface,
		VLAN:      entry.VLAN,
		SSID:      entry.SSID,
	}

	if entry.Lease != nil {
		device.Lease = &models.Lease{
			Type:      entry.Lease.Type,
			ExpiresIn: entry.Lease.ExpiresIn,
		}
	}

	return device
}

// Package peplink pkg/peplink/wan.go

package peplink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pepwatch/pepwatch/pkg/models"
)

// GetWANStatus implements Client. One WANConnection is produced per slot
// named by the order array, including disabled slots, so WAN identity is
// stable across cycles. Download/upload rates come from the traffic
// endpoint and are filled in at merge time.
func (c *RouterClient) GetWANStatus(ctx context.Context) ([]models.WANConnection, error) {
	endpoint := officialEndpoint("status.wan.connection")

	raw, err := c.apiGet(ctx, "wan_status", endpoint)
	if err != nil {
		return nil, err
	}

	wans, err := parseWANConnections(raw, c.now())
	if err != nil {
		return nil, &APIError{Op: "wan_status", Endpoint: endpoint, Wrapped: err}
	}

	return wans, nil
}

func parseWANConnections(raw json.RawMessage, now time.Time) ([]models.WANConnection, error) {
	indexed, err := parseIndexedObject(raw)
	if err != nil {
		return nil, err
	}

	wans := make([]models.WANConnection, 0, len(indexed.Order))

	for _, id := range indexed.Order {
		entryRaw, ok := indexed.Entries[id]
		if !ok {
			// Slot named by order but absent from the object: keep the
			// slot so consumers see a stable WAN set, just disabled.
			wans = append(wans, models.WANConnection{
				ID:   id,
				Name: fmt.Sprintf("WAN %d", id),
			})

			continue
		}

		var entry wanEntry
		if err := json.Unmarshal(entryRaw, &entry); err != nil {
			return nil, fmt.Errorf("%w: wan %d: %w", ErrParse, id, err)
		}

		wans = append(wans, normalizeWAN(id, &entry, now))
	}

	return wans, nil
}

func normalizeWAN(id int, entry *wanEntry, now time.Time) models.WANConnection {
	wan := models.WANConnection{
		ID:          id,
		Name:        entry.Name,
		Enabled:     entry.Enable,
		Type:        entry.Type,
		Method:      entry.Method,
		RoutingMode: entry.RoutingMode,
		Priority:    entry.Priority,
		IP:          entry.IP,
		Gateway:     entry.Gateway,
		Mask:        entry.Mask,
		DNS:         entry.DNS,
		MTU:         entry.MTU,
		UptimeSecs:  entry.Uptime,
		Message:     entry.Message,
		StatusLED:   entry.StatusLED,
	}

	if wan.Name == "" {
		wan.Name = fmt.Sprintf("WAN %d", id)
	}

	if entry.Uptime > 0 {
		upSince := now.Add(-time.Duration(entry.Uptime) * time.Second)
		wan.UpSince = &upSince
	}

	return wan
}

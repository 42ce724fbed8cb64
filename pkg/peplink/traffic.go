// Package peplink pkg/peplink/traffic.go

package peplink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pepwatch/pepwatch/pkg/models"
)

// GetTrafficStats implements Client. The lifetime group reports cumulative
// MB, the bandwidth group instantaneous kbps; each carries its own
// timestamp because the CGI samples them independently.
func (c *RouterClient) GetTrafficStats(ctx context.Context) (*models.TrafficStats, error) {
	endpoint := c.unofficialEndpoint("status.traffic", nil)

	raw, err := c.apiGet(ctx, "traffic", endpoint)
	if err != nil {
		return nil, err
	}

	stats, err := parseTrafficStats(raw)
	if err != nil {
		return nil, &APIError{Op: "traffic", Endpoint: endpoint, Wrapped: err}
	}

	return stats, nil
}

func parseTrafficStats(raw json.RawMessage) (*models.TrafficStats, error) {
	var resp trafficResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if resp.Lifetime == nil && resp.Bandwidth == nil {
		return nil, fmt.Errorf("%w: traffic response has neither lifetime nor bandwidth", ErrParse)
	}

	stats := &models.TrafficStats{}
	byID := make(map[int]*models.WANTraffic)

	var seen []int

	// Both counter groups write through these; the ordered slice is built
	// only after every group has been folded in.
	wanFor := func(id int, name string) *models.WANTraffic {
		if wt, ok := byID[id]; ok {
			if wt.Name == "" {
				wt.Name = name
			}

			return wt
		}

		wt := &models.WANTraffic{WANID: id, Name: name}
		byID[id] = wt
		seen = append(seen, id)

		return wt
	}

	if resp.Lifetime != nil {
		group, err := parseIndexedObject(resp.Lifetime)
		if err != nil {
			return nil, fmt.Errorf("lifetime: %w", err)
		}

		if ts := group.timestampExtra(); ts > 0 {
			stats.LifetimeAt = time.Unix(ts, 0).UTC()
		}

		for _, id := range group.Order {
			entry, err := decodeTrafficEntry(group.Entries[id])
			if err != nil {
				return nil, fmt.Errorf("lifetime wan %d: %w", id, err)
			}

			wt := wanFor(id, entry.Name)
			wt.LifetimeRxMB = int64(entry.Overall.Download)
			wt.LifetimeTxMB = int64(entry.Overall.Upload)
			stats.TotalLifetimeRxMB += wt.LifetimeRxMB
			stats.TotalLifetimeTxMB += wt.LifetimeTxMB
		}
	}

	if resp.Bandwidth != nil {
		group, err := parseIndexedObject(resp.Bandwidth)
		if err != nil {
			return nil, fmt.Errorf("bandwidth: %w", err)
		}

		if ts := group.timestampExtra(); ts > 0 {
			stats.BandwidthAt = time.Unix(ts, 0).UTC()
		}

		for _, id := range group.Order {
			entry, err := decodeTrafficEntry(group.Entries[id])
			if err != nil {
				return nil, fmt.Errorf("bandwidth wan %d: %w", id, err)
			}

			wt := wanFor(id, entry.Name)
			wt.RxKbps = entry.Overall.Download
			wt.TxKbps = entry.Overall.Upload
			stats.TotalRxKbps += wt.RxKbps
			stats.TotalTxKbps += wt.TxKbps
		}
	}

	stats.WANs = make([]models.WANTraffic, 0, len(seen))
	for _, id := range seen {
		stats.WANs = append(stats.WANs, *byID[id])
	}

	return stats, nil
}

func decodeTrafficEntry(raw json.RawMessage) (*trafficEntry, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: wan named in order but missing from group", ErrParse)
	}

	var entry trafficEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return &entry, nil
}

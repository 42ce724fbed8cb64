// Package poller pkg/poller/aggregator.go

package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pepwatch/pepwatch/pkg/models"
	"github.com/pepwatch/pepwatch/pkg/peplink"
)

// Aggregator fans out to all applicable endpoint fetchers concurrently and
// merges their tagged results into one snapshot. A section that fails this
// cycle keeps its previous data, flagged stale; only a cycle in which
// every attempted section fails is an error.
type Aggregator struct {
	client peplink.Client
	now    func() time.Time
}

func NewAggregator(client peplink.Client) *Aggregator {
	return &Aggregator{
		client: client,
		now:    time.Now,
	}
}

// fetchResult is the tagged outcome of one endpoint fetch. Failures never
// cross a fetcher's boundary as anything but this value.
type fetchResult struct {
	section models.Section
	err     error
	apply   func(*models.Snapshot)
}

type fetchTask struct {
	section models.Section
	slow    bool
	run     func(ctx context.Context) fetchResult
}

func (a *Aggregator) tasks() []fetchTask {
	return []fetchTask{
		{
			section: models.SectionWAN,
			slow:    true,
			run: func(ctx context.Context) fetchResult {
				wans, err := a.client.GetWANStatus(ctx)
				return fetchResult{
					section: models.SectionWAN,
					err:     err,
					apply:   func(s *models.Snapshot) { s.WANs = wans },
				}
			},
		},
		{
			section: models.SectionClients,
			slow:    true,
			run: func(ctx context.Context) fetchResult {
				clients, err := a.client.GetClients(ctx)
				return fetchResult{
					section: models.SectionClients,
					err:     err,
					apply:   func(s *models.Snapshot) { s.Clients = clients },
				}
			},
		},
		{
			section: models.SectionTraffic,
			run: func(ctx context.Context) fetchResult {
				traffic, err := a.client.GetTrafficStats(ctx)
				return fetchResult{
					section: models.SectionTraffic,
					err:     err,
					apply:   func(s *models.Snapshot) { s.Traffic = traffic },
				}
			},
		},
		{
			section: models.SectionFans,
			run: func(ctx context.Context) fetchResult {
				fans, err := a.client.GetFanSpeeds(ctx)
				return fetchResult{
					section: models.SectionFans,
					err:     err,
					apply:   func(s *models.Snapshot) { s.System.Fans = fans },
				}
			},
		},
		{
			section: models.SectionThermal,
			run: func(ctx context.Context) fetchResult {
				sensors, err := a.client.GetThermalSensors(ctx)
				return fetchResult{
					section: models.SectionThermal,
					err:     err,
					apply:   func(s *models.Snapshot) { s.System.Thermal = sensors },
				}
			},
		},
		{
			section: models.SectionSystem,
			slow:    true,
			run: func(ctx context.Context) fetchResult {
				device, err := a.client.GetDeviceInfo(ctx)
				return fetchResult{
					section: models.SectionSystem,
					err:     err,
					apply: func(s *models.Snapshot) {
						if device != nil {
							s.System.Device = *device
						}
					},
				}
			},
		},
		{
			section: models.SectionGPS,
			slow:    true,
			run: func(ctx context.Context) fetchResult {
				loc, err := a.client.GetLocation(ctx)
				return fetchResult{
					section: models.SectionGPS,
					err:     err,
					apply:   func(s *models.Snapshot) { s.GPS = loc },
				}
			},
		},
	}
}

// Refresh implements Refresher. All selected fetchers run concurrently;
// the cycle completes in roughly the slowest fetcher's latency. The
// session cookie is shared read-only across fetchers; re-authentication
// on expiry happens inside the client under its single-writer rule.
func (a *Aggregator) Refresh(ctx context.Context, prev *models.Snapshot, includeSlow bool) (*models.Snapshot, error) {
	if err := a.client.EnsureSession(ctx); err != nil {
		return nil, &CycleError{
			Cause:    err,
			Failures: map[models.Section]error{},
		}
	}

	var selected []fetchTask

	for _, t := range a.tasks() {
		if t.slow && !includeSlow {
			continue
		}

		selected = append(selected, t)
	}

	results := make(chan fetchResult, len(selected))

	var wg sync.WaitGroup

	for _, t := range selected {
		wg.Add(1)

		go func(t fetchTask) {
			defer wg.Done()
			results <- t.run(ctx)
		}(t)
	}

	wg.Wait()
	close(results)

	return a.merge(prev, results)
}

func (a *Aggregator) merge(prev *models.Snapshot, results <-chan fetchResult) (*models.Snapshot, error) {
	now := a.now()
	snap := prev.Clone()
	snap.Timestamp = now

	succeeded := 0
	failures := make(map[models.Section]error)

	for r := range results {
		if r.err != nil {
			failures[r.section] = r.err
			old := snap.Status[r.section]
			snap.Status[r.section] = models.SectionStatus{
				OK:          false,
				Stale:       !old.LastSuccess.IsZero(),
				LastSuccess: old.LastSuccess,
				Error:       r.err.Error(),
			}

			continue
		}

		succeeded++
		r.apply(snap)
		snap.Status[r.section] = models.SectionStatus{
			OK:          true,
			LastSuccess: now,
		}
	}

	if succeeded == 0 {
		return nil, &CycleError{
			Cause:    rootCause(failures),
			Failures: failures,
		}
	}

	deriveWANRates(snap)

	return snap, nil
}

// rootCause picks the dominant failure class: auth beats connectivity
// beats everything else, because auth failures change the coordinator's
// consumer-facing state.
func rootCause(failures map[models.Section]error) error {
	var first, conn error

	for _, section := range models.Sections() {
		err, ok := failures[section]
		if !ok {
			continue
		}

		if errors.Is(err, peplink.ErrAuthFailed) {
			return err
		}

		if conn == nil && errors.Is(err, peplink.ErrConnectivity) {
			conn = err
		}

		if first == nil {
			first = err
		}
	}

	if conn != nil {
		return conn
	}

	return first
}

// deriveWANRates projects the bandwidth counters onto the WAN records in
// Mbit/s. Runs against carried-forward sections too, so a WAN refresh
// without fresh traffic keeps the last known rates.
func deriveWANRates(snap *models.Snapshot) {
	if snap.Traffic == nil {
		return
	}

	byID := make(map[int]models.WANTraffic, len(snap.Traffic.WANs))
	for _, wt := range snap.Traffic.WANs {
		byID[wt.WANID] = wt
	}

	for i := range snap.WANs {
		if wt, ok := byID[snap.WANs[i].ID]; ok {
			snap.WANs[i].DownloadMbps = wt.RxKbps / 1000
			snap.WANs[i].UploadMbps = wt.TxKbps / 1000
		}
	}
}

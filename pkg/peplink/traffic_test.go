package peplink

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoWANTrafficJSON = `{
	"lifetime": {
		"order": [1, 2],
		"unit": "MB",
		"timestamp": 1767225600,
		"1": {"name": "WAN 1", "overall": {"download": 1048576, "upload": 524288, "unit": "MB"}},
		"2": {"name": "Cellular", "overall": {"download": 2048, "upload": 1024, "unit": "MB"}}
	},
	"bandwidth": {
		"order": [1, 2],
		"unit": "kbps",
		"timestamp": 1767225605,
		"1": {"name": "WAN 1", "overall": {"download": 5000, "upload": 1200, "unit": "kbps"}},
		"2": {"name": "Cellular", "overall": {"download": 150, "upload": 80, "unit": "kbps"}}
	}
}`

func TestParseTrafficStats(t *testing.T) {
	stats, err := parseTrafficStats(json.RawMessage(twoWANTrafficJSON))
	require.NoError(t, err)
	require.Len(t, stats.WANs, 2)

	first := stats.WANs[0]
	assert.Equal(t, 1, first.WANID)
	assert.Equal(t, "WAN 1", first.Name)
	assert.Equal(t, int64(1048576), first.LifetimeRxMB)
	assert.Equal(t, int64(524288), first.LifetimeTxMB)
	assert.InDelta(t, 5000, first.RxKbps, 0.001)
	assert.InDelta(t, 1200, first.TxKbps, 0.001)

	assert.Equal(t, int64(1048576+2048), stats.TotalLifetimeRxMB)
	assert.Equal(t, int64(524288+1024), stats.TotalLifetimeTxMB)
	assert.InDelta(t, 5150, stats.TotalRxKbps, 0.001)
	assert.InDelta(t, 1280, stats.TotalTxKbps, 0.001)

	assert.Equal(t, time.Unix(1767225600, 0).UTC(), stats.LifetimeAt)
	assert.Equal(t, time.Unix(1767225605, 0).UTC(), stats.BandwidthAt)
}

func TestParseTrafficStats_BandwidthOnly(t *testing.T) {
	raw := json.RawMessage(`{
		"bandwidth": {
			"order": [1],
			"1": {"name": "WAN 1", "overall": {"download": 300, "upload": 100, "unit": "kbps"}}
		}
	}`)

	stats, err := parseTrafficStats(raw)
	require.NoError(t, err)
	require.Len(t, stats.WANs, 1)
	assert.InDelta(t, 300, stats.WANs[0].RxKbps, 0.001)
	assert.Zero(t, stats.WANs[0].LifetimeRxMB)
	assert.True(t, stats.LifetimeAt.IsZero())
}

func TestParseTrafficStats_EmptyResponse(t *testing.T) {
	_, err := parseTrafficStats(json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseTrafficStats_OrderWithoutEntry(t *testing.T) {
	raw := json.RawMessage(`{"bandwidth": {"order": [1, 2], "1": {"name": "WAN 1", "overall": {"download": 1, "upload": 1}}}}`)

	_, err := parseTrafficStats(raw)
	assert.ErrorIs(t, err, ErrParse)
}

func TestGetTrafficStats_EndToEnd(t *testing.T) {
	sim := newRouterSim()
	sim.data["status.traffic"] = twoWANTrafficJSON
	c, _ := newTestClient(t, sim)

	stats, err := c.GetTrafficStats(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.WANs, 2)
}

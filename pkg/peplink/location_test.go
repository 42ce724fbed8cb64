package peplink

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocation(t *testing.T) {
	sim := newRouterSim()
	sim.data["info.location"] = `{
		"gps": true,
		"type": "gps",
		"location": {
			"timestamp": 1767225600,
			"latitude": 52.370216,
			"longitude": 4.895168,
			"altitude": 11.2,
			"speed": 0.4,
			"heading": 182.5,
			"hdop": 0.8
		}
	}`
	c, _ := newTestClient(t, sim)

	loc, err := c.GetLocation(context.Background())
	require.NoError(t, err)

	assert.True(t, loc.HasGPS)
	assert.InDelta(t, 52.370216, loc.Latitude, 1e-9)
	assert.InDelta(t, 4.895168, loc.Longitude, 1e-9)
	assert.InDelta(t, 11.2, loc.Altitude, 0.001)
	assert.InDelta(t, 0.4, loc.SpeedKmh, 0.001)
	require.NotNil(t, loc.Heading)
	assert.InDelta(t, 182.5, *loc.Heading, 0.001)
	assert.InDelta(t, 4.0, loc.Accuracy, 0.001, "accuracy is hdop scaled to meters")
	assert.Equal(t, time.Unix(1767225600, 0).UTC(), loc.FixedAt)
}

func TestGetLocation_NoReceiver(t *testing.T) {
	sim := newRouterSim()
	sim.data["info.location"] = `{"gps": false}`
	c, _ := newTestClient(t, sim)

	loc, err := c.GetLocation(context.Background())
	require.NoError(t, err, "no GPS hardware is a valid answer")
	assert.False(t, loc.HasGPS)
	assert.Zero(t, loc.Latitude)
}

func TestGetLocation_NoHeading(t *testing.T) {
	sim := newRouterSim()
	sim.data["info.location"] = `{"gps": true, "type": "gps", "location": {"timestamp": 1767225600, "latitude": 1, "longitude": 2}}`
	c, _ := newTestClient(t, sim)

	loc, err := c.GetLocation(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loc.Heading, "stationary fix carries no heading")
	assert.Zero(t, loc.Accuracy)
}

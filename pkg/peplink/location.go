// Package peplink pkg/peplink/location.go

package peplink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pepwatch/pepwatch/pkg/models"
)

// gpsAccuracyBaseMeters scales horizontal dilution of precision into an
// accuracy estimate.
const gpsAccuracyBaseMeters = 5.0

// GetLocation implements Client. Routers without a GPS receiver report
// gps=false, which is a valid answer, not an error.
func (c *RouterClient) GetLocation(ctx context.Context) (*models.GPSLocation, error) {
	endpoint := c.unofficialEndpoint("info.location", nil)

	raw, err := c.apiGet(ctx, "location", endpoint)
	if err != nil {
		return nil, err
	}

	var resp locationResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &APIError{Op: "location", Endpoint: endpoint, Wrapped: fmt.Errorf("%w: %w", ErrParse, err)}
	}

	loc := &models.GPSLocation{
		HasGPS: resp.GPS,
		Type:   resp.Type,
	}

	if !resp.GPS || resp.Location == nil {
		return loc, nil
	}

	loc.Latitude = resp.Location.Latitude
	loc.Longitude = resp.Location.Longitude
	loc.Altitude = resp.Location.Altitude
	loc.SpeedKmh = resp.Location.Speed
	loc.Heading = resp.Location.Heading

	if resp.Location.HDOP != nil {
		loc.Accuracy = *resp.Location.HDOP * gpsAccuracyBaseMeters
	}

	if resp.Location.Timestamp > 0 {
		loc.FixedAt = time.Unix(resp.Location.Timestamp, 0).UTC()
	}

	return loc, nil
}

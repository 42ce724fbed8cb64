// Package peplink pkg/peplink/system.go
//
// Fetchers for the unofficial status.system.info endpoints. Their
// availability varies by firmware and model; callers treat failures here
// as a normal degraded condition.

package peplink

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pepwatch/pepwatch/pkg/models"
)

func (c *RouterClient) systemInfo(ctx context.Context, op, infoType string) (json.RawMessage, string, error) {
	params := url.Values{}
	params.Set("infoType", infoType)
	endpoint := c.unofficialEndpoint("status.system.info", params)

	raw, err := c.apiGet(ctx, op, endpoint)

	return raw, endpoint, err
}

// GetFanSpeeds implements Client. Entry order is preserved; inactive fans
// stay in the list with Active=false rather than being dropped, so fan
// identity by index is stable.
func (c *RouterClient) GetFanSpeeds(ctx context.Context) ([]models.Fan, error) {
	raw, endpoint, err := c.systemInfo(ctx, "fan_speeds", "fanSpeed")
	if err != nil {
		return nil, err
	}

	var list fanSpeedList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, &APIError{Op: "fan_speeds", Endpoint: endpoint, Wrapped: fmt.Errorf("%w: %w", ErrParse, err)}
	}

	fans := make([]models.Fan, 0, len(list.FanSpeed))
	for _, f := range list.FanSpeed {
		fans = append(fans, models.Fan{
			Active:     f.Active,
			SpeedRPM:   f.Value,
			MaxRPM:     f.Total,
			Percentage: f.Percentage,
		})
	}

	return fans, nil
}

// GetThermalSensors implements Client.
func (c *RouterClient) GetThermalSensors(ctx context.Context) ([]models.ThermalSensor, error) {
	raw, endpoint, err := c.systemInfo(ctx, "thermal_sensors", "thermalSensor")
	if err != nil {
		return nil, err
	}

	var list thermalSensorList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, &APIError{Op: "thermal_sensors", Endpoint: endpoint, Wrapped: fmt.Errorf("%w: %w", ErrParse, err)}
	}

	sensors := make([]models.ThermalSensor, 0, len(list.ThermalSensor))
	for _, s := range list.ThermalSensor {
		sensors = append(sensors, models.ThermalSensor{
			Temperature: s.Temperature,
			Threshold:   s.Threshold,
			Min:         s.Min,
			Max:         s.Max,
		})
	}

	return sensors, nil
}

// GetDeviceInfo implements Client.
func (c *RouterClient) GetDeviceInfo(ctx context.Context) (*models.DeviceInfo, error) {
	raw, endpoint, err := c.systemInfo(ctx, "device_info", "device")
	if err != nil {
		return nil, err
	}

	var resp deviceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &APIError{Op: "device_info", Endpoint: endpoint, Wrapped: fmt.Errorf("%w: %w", ErrParse, err)}
	}

	return &models.DeviceInfo{
		SerialNumber:     resp.Device.SerialNumber,
		Name:             resp.Device.Name,
		Model:            resp.Device.Model,
		ProductCode:      resp.Device.ProductCode,
		HardwareRevision: resp.Device.HardwareRevision,
		FirmwareVersion:  resp.Device.FirmwareVersion,
		PepVPNVersion:    resp.Device.PepVPNVersion,
	}, nil
}

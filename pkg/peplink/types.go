package peplink

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// envelope is the outer frame of every API response. The payload sits
// under "response"; stat "fail" with code 401 is an auth failure even on
// an HTTP 200.
type envelope struct {
	Stat     string          `json:"stat"`
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

type loginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Challenge string `json:"challenge"`
}

// wanEntry is one slot of the status.wan.connection object.
type wanEntry struct {
	Name        string   `json:"name"`
	Enable      bool     `json:"enable"`
	Type        string   `json:"type"`
	Method      string   `json:"method"`
	RoutingMode string   `json:"routingMode"`
	Priority    *int     `json:"priority"`
	IP          *string  `json:"ip"`
	Gateway     *string  `json:"gateway"`
	Mask        *string  `json:"mask"`
	DNS         []string `json:"dns"`
	MTU         int      `json:"mtu"`
	Uptime      int64    `json:"uptime"`
	Message     string   `json:"message"`
	StatusLED   string   `json:"statusLed"`
}

type clientList struct {
	List []clientEntry `json:"list"`
}

type clientEntry struct {
	MAC            string       `json:"mac"`
	IP             string       `json:"ip"`
	Name           string       `json:"name"`
	Hostname       string       `json:"hostname"`
	ConnectionType string       `json:"connectionType"`
	Active         *bool        `json:"active"`
	Interface      string       `json:"interface"`
	VLAN           string       `json:"vlan"`
	SSID           string       `json:"ssid"`
	Lease          *leaseEntry  `json:"lease"`
}

type leaseEntry struct {
	Type      string `json:"type"`
	ExpiresIn int64  `json:"expiresIn"`
}

// trafficResponse frames the status.traffic payload. Each group is an
// indexed object (digit keys plus "order") with its own timestamp.
type trafficResponse struct {
	Lifetime  json.RawMessage `json:"lifetime"`
	Bandwidth json.RawMessage `json:"bandwidth"`
	Traffic   json.RawMessage `json:"traffic"`
}

type trafficEntry struct {
	Name    string         `json:"name"`
	Overall trafficOverall `json:"overall"`
}

type trafficOverall struct {
	Download float64 `json:"download"`
	Upload   float64 `json:"upload"`
	Unit     string  `json:"unit"`
}

type fanSpeedList struct {
	FanSpeed []fanEntry `json:"fanSpeed"`
}

type fanEntry struct {
	Active     bool    `json:"active"`
	Value      int     `json:"value"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type thermalSensorList struct {
	ThermalSensor []thermalEntry `json:"thermalSensor"`
}

type thermalEntry struct {
	Max         float64 `json:"max"`
	Min         float64 `json:"min"`
	Threshold   float64 `json:"threshold"`
	Temperature float64 `json:"temperature"`
}

type deviceResponse struct {
	Device deviceEntry `json:"device"`
}

type deviceEntry struct {
	SerialNumber     string `json:"serialNumber"`
	Name             string `json:"name"`
	Model            string `json:"model"`
	ProductCode      string `json:"productCode"`
	HardwareRevision string `json:"hardwareRevision"`
	FirmwareVersion  string `json:"firmwareVersion"`
	PepVPNVersion    string `json:"pepvpnVersion"`
}

type locationResponse struct {
	GPS      bool           `json:"gps"`
	Type     string         `json:"type"`
	Location *locationEntry `json:"location"`
}

type locationEntry struct {
	Timestamp int64    `json:"timestamp"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  float64  `json:"altitude"`
	Speed     float64  `json:"speed"`
	Heading   *float64 `json:"heading"`
	HDOP      *float64 `json:"hdop"`
}

// indexedObject is the router's recurring shape for per-WAN data: an
// object keyed by string digits plus an "order" array establishing slot
// sequence and arbitrary sibling keys ("timestamp", "unit", ...).
type indexedObject struct {
	Order   []int
	Entries map[int]json.RawMessage
	Extras  map[string]json.RawMessage
}

func parseIndexedObject(raw json.RawMessage) (*indexedObject, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	out := &indexedObject{
		Entries: make(map[int]json.RawMessage),
		Extras:  make(map[string]json.RawMessage),
	}

	for key, value := range fields {
		if key == "order" {
			if err := json.Unmarshal(value, &out.Order); err != nil {
				return nil, fmt.Errorf("%w: bad order array: %w", ErrParse, err)
			}

			continue
		}

		if id, err := strconv.Atoi(key); err == nil {
			out.Entries[id] = value
			continue
		}

		out.Extras[key] = value
	}

	// Some firmware omits the order array; fall back to sorted ids so the
	// slot sequence is still deterministic.
	if out.Order == nil {
		for id := range out.Entries {
			out.Order = append(out.Order, id)
		}

		sort.Ints(out.Order)
	}

	return out, nil
}

// timestampExtra reads an epoch-seconds "timestamp" sibling, if present.
func (o *indexedObject) timestampExtra() int64 {
	raw, ok := o.Extras["timestamp"]
	if !ok {
		return 0
	}

	var ts int64
	if err := json.Unmarshal(raw, &ts); err != nil {
		return 0
	}

	return ts
}

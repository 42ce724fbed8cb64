// Package models pkg/models/snapshot.go
package models

import "time"

// Section names a group of router status data fetched by one endpoint.
type Section string

const (
	SectionWAN     Section = "wan"
	SectionClients Section = "clients"
	SectionTraffic Section = "traffic"
	SectionFans    Section = "fans"
	SectionThermal Section = "thermal"
	SectionSystem  Section = "system"
	SectionGPS     Section = "gps"
)

// Sections lists every section in a fixed order.
func Sections() []Section {
	return []Section{
		SectionWAN,
		SectionClients,
		SectionTraffic,
		SectionFans,
		SectionThermal,
		SectionSystem,
		SectionGPS,
	}
}

// SectionStatus records the fetch outcome for one section of a Snapshot.
// A stale section retains the data of the last successful fetch.
type SectionStatus struct {
	OK          bool      `json:"ok"`
	Stale       bool      `json:"stale"`
	LastSuccess time.Time `json:"last_success,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// WANConnection is the normalized state of one WAN uplink slot.
// Identity is the slot ID, stable across cycles for a given router.
// Disabled slots are present with Enabled=false and nil optional fields.
type WANConnection struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Enabled      bool       `json:"enabled"`
	Type         string     `json:"type,omitempty"`
	Method       string     `json:"method,omitempty"`
	RoutingMode  string     `json:"routing_mode,omitempty"`
	Priority     *int       `json:"priority,omitempty"`
	IP           *string    `json:"ip,omitempty"`
	Gateway      *string    `json:"gateway,omitempty"`
	Mask         *string    `json:"mask,omitempty"`
	DNS          []string   `json:"dns,omitempty"`
	MTU          int        `json:"mtu,omitempty"`
	UptimeSecs   int64      `json:"uptime_seconds"`
	UpSince      *time.Time `json:"up_since,omitempty"`
	Message      string     `json:"message,omitempty"`
	StatusLED    string     `json:"status_led,omitempty"`
	DownloadMbps float64    `json:"download_mbps"`
	UploadMbps   float64    `json:"upload_mbps"`
}

// ClientDevice is one entry of the router's client table. Identity is the
// MAC address; absence from a later snapshot means "away", not deleted.
type ClientDevice struct {
	MAC       string `json:"mac"`
	IP        string `json:"ip,omitempty"`
	Name      string `json:"name"`
	Type      string `json:"connection_type,omitempty"`
	Active    bool   `json:"active"`
	Interface string `json:"interface,omitempty"`
	VLAN      string `json:"vlan,omitempty"`
	SSID      string `json:"ssid,omitempty"`
	Lease     *Lease `json:"lease,omitempty"`
}

// Lease holds DHCP lease details for a client, when the router reports them.
type Lease struct {
	Type      string `json:"type,omitempty"`
	ExpiresIn int64  `json:"expires_in,omitempty"` // seconds
}

// WANTraffic holds both counter families for one WAN slot.
type WANTraffic struct {
	WANID        int     `json:"wan_id"`
	Name         string  `json:"name,omitempty"`
	LifetimeRxMB int64   `json:"lifetime_rx_mb"`
	LifetimeTxMB int64   `json:"lifetime_tx_mb"`
	RxKbps       float64 `json:"rx_kbps"`
	TxKbps       float64 `json:"tx_kbps"`
}

// TrafficStats carries per-WAN and total download/upload counters.
// Lifetime counters and instantaneous bandwidth carry their own timestamps
// because the router reports them from separate sub-objects.
type TrafficStats struct {
	WANs              []WANTraffic `json:"wans"`
	TotalLifetimeRxMB int64        `json:"total_lifetime_rx_mb"`
	TotalLifetimeTxMB int64        `json:"total_lifetime_tx_mb"`
	TotalRxKbps       float64      `json:"total_rx_kbps"`
	TotalTxKbps       float64      `json:"total_tx_kbps"`
	LifetimeAt        time.Time    `json:"lifetime_at,omitempty"`
	BandwidthAt       time.Time    `json:"bandwidth_at,omitempty"`
}

// Fan is one fan entry, in the order the router reports them.
type Fan struct {
	Active     bool    `json:"active"`
	SpeedRPM   int     `json:"speed_rpm"`
	MaxRPM     int     `json:"max_rpm"`
	Percentage float64 `json:"percentage"`
}

// ThermalSensor is one thermal sensor reading.
type ThermalSensor struct {
	Temperature float64 `json:"temperature"`
	Threshold   float64 `json:"threshold"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}

// DeviceInfo identifies the router hardware and firmware.
type DeviceInfo struct {
	SerialNumber     string `json:"serial_number,omitempty"`
	Name             string `json:"name,omitempty"`
	Model            string `json:"model,omitempty"`
	ProductCode      string `json:"product_code,omitempty"`
	HardwareRevision string `json:"hardware_revision,omitempty"`
	FirmwareVersion  string `json:"firmware_version,omitempty"`
	PepVPNVersion    string `json:"pepvpn_version,omitempty"`
}

// GPSLocation is the router's reported position, for models with GPS.
type GPSLocation struct {
	HasGPS    bool      `json:"has_gps"`
	Type      string    `json:"type,omitempty"`
	Latitude  float64   `json:"latitude,omitempty"`
	Longitude float64   `json:"longitude,omitempty"`
	Altitude  float64   `json:"altitude,omitempty"`
	SpeedKmh  float64   `json:"speed_kmh,omitempty"`
	Heading   *float64  `json:"heading,omitempty"`
	Accuracy  float64   `json:"accuracy_m,omitempty"`
	FixedAt   time.Time `json:"fixed_at,omitempty"`
}

// SystemMetrics groups the data served by the unofficial system endpoints.
// Optional: absent on firmware/models that do not expose them.
type SystemMetrics struct {
	Fans    []Fan           `json:"fans,omitempty"`
	Thermal []ThermalSensor `json:"thermal,omitempty"`
	Device  DeviceInfo      `json:"device"`
}

// Snapshot is the merged, point-in-time view of all router status sections
// produced by one update cycle. Replacement is by swap, never in-place
// mutation, so consumers always observe an internally consistent view.
type Snapshot struct {
	Timestamp time.Time                 `json:"timestamp"`
	WANs      []WANConnection           `json:"wans"`
	Clients   []ClientDevice            `json:"clients"`
	Traffic   *TrafficStats             `json:"traffic,omitempty"`
	System    SystemMetrics             `json:"system"`
	GPS       *GPSLocation              `json:"gps,omitempty"`
	Status    map[Section]SectionStatus `json:"status"`
}

// Clone returns a copy of the snapshot with a fresh Status map, suitable
// as the base of a carry-forward merge. The WANs slice is copied element
// by element because the merge rewrites derived rate fields; every other
// section is replaced wholesale and treated as immutable once published.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return &Snapshot{Status: make(map[Section]SectionStatus)}
	}

	out := *s

	if s.WANs != nil {
		out.WANs = make([]WANConnection, len(s.WANs))
		copy(out.WANs, s.WANs)
	}

	out.Status = make(map[Section]SectionStatus, len(s.Status))

	for k, v := range s.Status {
		out.Status[k] = v
	}

	return &out
}

// Degraded reports whether at least one section failed while another
// succeeded in the cycle that produced this snapshot.
func (s *Snapshot) Degraded() bool {
	var ok, failed bool

	for _, st := range s.Status {
		if st.OK {
			ok = true
		} else {
			failed = true
		}
	}

	return ok && failed
}

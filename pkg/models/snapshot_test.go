package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_Clone(t *testing.T) {
	t.Run("nil snapshot", func(t *testing.T) {
		var s *Snapshot
		out := s.Clone()

		assert.NotNil(t, out)
		assert.NotNil(t, out.Status)
		assert.Empty(t, out.Status)
	})

	t.Run("wan entries are independent", func(t *testing.T) {
		orig := &Snapshot{
			WANs:   []WANConnection{{ID: 1, DownloadMbps: 5}},
			Status: map[Section]SectionStatus{},
		}

		out := orig.Clone()
		out.WANs[0].DownloadMbps = 9

		assert.InDelta(t, 5.0, orig.WANs[0].DownloadMbps, 0.001,
			"writing rates into a clone must not reach the original")
	})

	t.Run("status map is independent", func(t *testing.T) {
		orig := &Snapshot{
			Timestamp: time.Now(),
			WANs:      []WANConnection{{ID: 1, Name: "WAN 1"}},
			Status: map[Section]SectionStatus{
				SectionWAN: {OK: true},
			},
		}

		out := orig.Clone()
		out.Status[SectionWAN] = SectionStatus{OK: false, Error: "boom"}

		assert.True(t, orig.Status[SectionWAN].OK, "clone must not mutate the original status")
		assert.Equal(t, orig.WANs, out.WANs)
	})
}

func TestSnapshot_Degraded(t *testing.T) {
	tests := []struct {
		name   string
		status map[Section]SectionStatus
		want   bool
	}{
		{
			name: "all ok",
			status: map[Section]SectionStatus{
				SectionWAN:     {OK: true},
				SectionClients: {OK: true},
			},
			want: false,
		},
		{
			name: "mixed",
			status: map[Section]SectionStatus{
				SectionWAN:     {OK: true},
				SectionTraffic: {OK: false, Stale: true},
			},
			want: true,
		},
		{
			name: "all failed",
			status: map[Section]SectionStatus{
				SectionWAN: {OK: false},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Snapshot{Status: tt.status}
			assert.Equal(t, tt.want, s.Degraded())
		})
	}
}

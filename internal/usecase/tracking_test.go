package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackingResolver_Resolve(t *testing.T) {
	r := NewTrackingResolver(nil)

	tests := []struct {
		partner    string
		trackingID string
		want       string
	}{
		{"Delhivery", "DL999", "https://www.delhivery.com/tracking/DL999"},
		{"BlueDart Express", "BD123", "https://www.bluedart.com/tracking?trackno=BD123"},
		{"XPRESSBEES", "XB7", "https://www.xpressbees.com/track-shipment/XB7"},
		{"DTDC Courier", "D55", "https://www.dtdc.in/tracking?awb=D55"},
		{"Ekart Logistics", "EK1", "https://ekartlogistics.com/shipmenttrack/EK1"},
		{"Unknown Co", "X1", ""},
		{"", "X1", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Resolve(tt.partner, tt.trackingID), "partner %q", tt.partner)
	}
}

func TestTrackingResolver_CustomCarriers(t *testing.T) {
	r := NewTrackingResolver([]CarrierLink{
		{Pattern: "pigeon", URLTemplate: "https://pigeonpost.example/%s"},
	})

	assert.Equal(t, "https://pigeonpost.example/P1", r.Resolve("Pigeon Post", "P1"))
	// defaults are replaced, not appended
	assert.Equal(t, "", r.Resolve("BlueDart", "BD123"))
}

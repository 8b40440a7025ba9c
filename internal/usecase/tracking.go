package usecase

import (
	"fmt"
	"strings"
)

// CarrierLink maps a carrier-name fragment to a tracking URL template with a
// single %s slot for the tracking id. Matching is case-insensitive substring,
// evaluated in order.
type CarrierLink struct {
	Pattern     string
	URLTemplate string
}

var DefaultCarriers = []CarrierLink{
	{Pattern: "delhivery", URLTemplate: "https://www.delhivery.com/tracking/%s"},
	{Pattern: "bluedart", URLTemplate: "https://www.bluedart.com/tracking?trackno=%s"},
	{Pattern: "xpressbees", URLTemplate: "https://www.xpressbees.com/track-shipment/%s"},
	{Pattern: "dtdc", URLTemplate: "https://www.dtdc.in/tracking?awb=%s"},
	{Pattern: "ekart", URLTemplate: "https://ekartlogistics.com/shipmenttrack/%s"},
}

type TrackingResolver struct {
	carriers []CarrierLink
}

func NewTrackingResolver(carriers []CarrierLink) *TrackingResolver {
	if len(carriers) == 0 {
		carriers = DefaultCarriers
	}
	return &TrackingResolver{carriers: carriers}
}

// Resolve returns the carrier tracking link, or "" when the partner is not a
// known carrier. Callers fall back to quoting the raw tracking id.
func (r *TrackingResolver) Resolve(deliveryPartner, trackingID string) string {
	partner := strings.ToLower(deliveryPartner)
	for _, c := range r.carriers {
		if strings.Contains(partner, c.Pattern) {
			return fmt.Sprintf(c.URLTemplate, trackingID)
		}
	}
	return ""
}

package domain

import "time"

// Calendar dates derived from a structural route's day offsets.
//
// DraftStayCities is the single source of truth for which cities are
// eligible to be shown as a stay. Leg role flags are never consulted for
// that decision.
//
// InboundSlackDays is a signed difference between the locked inbound
// flight date and the derived arrival at the inbound gateway. A negative
// value means the ground route runs later than the locked flight; it is
// reported through Warnings rather than rejected.
type DerivedSchedule struct {
	ArrivalDates     map[string]time.Time `json:"arrival_dates"`
	DepartureDates   map[string]time.Time `json:"departure_dates"`
	TotalTripDays    int                  `json:"total_trip_days"`
	InboundSlackDays int                  `json:"inbound_slack_days"`
	DraftStayCities  []string             `json:"draft_stay_cities"`
	Warnings         []string             `json:"warnings,omitempty"`
}

// IsStayCity reports whether city is in the stay source-of-truth list.
func (d *DerivedSchedule) IsStayCity(city string) bool {
	for _, c := range d.DraftStayCities {
		if c == city {
			return true
		}
	}
	return false
}

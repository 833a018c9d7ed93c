package domain

import "time"

// Kind of a route step emitted by the route reader.
type StepKind string

const (
	StepOutboundFlight StepKind = "OUTBOUND_FLIGHT"
	StepTravel         StepKind = "TRAVEL"
	StepStay           StepKind = "STAY"
	StepInboundFlight  StepKind = "INBOUND_FLIGHT"
)

// One step of a read-only route traversal, always emitted in path order.
// Steps are derived on every read and never persisted.
//
// Flight and travel steps set FromCity/ToCity; stay steps set City and
// Nights. Date fields are filled where the derived schedule has them.
type RouteStep struct {
	Kind      StepKind  `json:"kind"`
	FromCity  string    `json:"from_city,omitempty"`
	ToCity    string    `json:"to_city,omitempty"`
	City      string    `json:"city,omitempty"`
	Nights    int       `json:"nights,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	DayOffset int       `json:"day_offset"`
	Arrival   time.Time `json:"arrival,omitzero"`
	Departure time.Time `json:"departure,omitzero"`
}

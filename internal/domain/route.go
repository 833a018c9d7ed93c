package domain

// Role of a ground leg's destination within the route.
type LegRole string

const (
	RoleTransfer LegRole = "TRANSFER"
	RoleBase     LegRole = "BASE"
)

// One directed ground hop between two cities.
// DepartureDayOffset is relative to the outbound gateway's arrival (day 0).
type GroundLeg struct {
	FromCity           string  `json:"from_city"`
	ToCity             string  `json:"to_city"`
	DepartureDayOffset int     `json:"departure_day_offset"`
	Role               LegRole `json:"role"`
	Mode               string  `json:"mode"`
}

// The finished linear route: two locked flight anchors bracketing an
// ordered ground leg sequence, plus the derived calendar schedule.
//
// A StructuralRoute is produced once by the ground route builder and is
// immutable afterwards. The path visits outbound gateway, each base city
// exactly once, then the inbound gateway; gateways never appear as
// intermediate BASE legs and no city repeats.
type StructuralRoute struct {
	OutboundFlight FlightAnchor     `json:"outbound_flight"`
	InboundFlight  FlightAnchor     `json:"inbound_flight"`
	GroundRoute    []GroundLeg      `json:"ground_route"`
	Derived        *DerivedSchedule `json:"derived"`
}

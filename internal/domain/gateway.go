package domain

// Aggregate score for one gateway pair, used for cross-gateway comparison.
// Composite is lower-is-better.
type GatewayScore struct {
	TotalPrice             float64 `json:"total_price"`
	TotalTravelTimeMinutes int     `json:"total_travel_time_minutes"`
	ReliabilityScore       float64 `json:"reliability_score"`
	Composite              float64 `json:"composite"`
}

// One candidate gateway pairing: the locked-candidate outbound and inbound
// anchors, their ranked flight shortlists, and the aggregate score.
// Explanation carries factual statements only, never a subjective "best".
type GatewayOption struct {
	Outbound        FlightAnchor   `json:"outbound"`
	Inbound         FlightAnchor   `json:"inbound"`
	OutboundFlights []FlightOption `json:"outbound_flights"`
	InboundFlights  []FlightOption `json:"inbound_flights"`
	Score           GatewayScore   `json:"score"`
	Explanation     []string       `json:"explanation"`
}

package domain

import "time"

// Represents a traveler-entered stop: a city plus an optional country hint
// and a desired number of nights. Desired nights are a soft preference used
// for day-offset accumulation; they are never a validated invariant.
type DraftStop struct {
	City          string
	Country       string
	DesiredNights int
}

// A locked outbound or inbound flight endpoint (city pair + calendar date).
// Anchors are immutable once locked: no pipeline stage may rewrite FromCity
// or ToCity after the gateways have been chosen.
type FlightAnchor struct {
	FromCity string
	ToCity   string
	Date     time.Time
}

// Passenger composition for a flight search.
type Passengers struct {
	Adults   int
	Children int
}

// An airport-backed city eligible to act as a flight gateway.
type Airport struct {
	City    string
	Country string
	Code    string
	Lat     float64
	Lon     float64
}

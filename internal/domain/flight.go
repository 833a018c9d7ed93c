package domain

import "time"

// One flown segment of a flight option.
type FlightLeg struct {
	FromAirport     string    `json:"from_airport"`
	ToAirport       string    `json:"to_airport"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// A ground wait between two flown segments.
type FlightLayover struct {
	Airport        string `json:"airport"`
	LayoverMinutes int    `json:"layover_minutes"`
}

// One element of a flight option's leg sequence. Exactly one of Flight or
// Layover is set. The sequence alternates flight/layover and always starts
// and ends with a flight.
type LegItem struct {
	Flight  *FlightLeg     `json:"flight,omitempty"`
	Layover *FlightLayover `json:"layover,omitempty"`
}

// A single bookable flight offer, normalized from the external API.
// Options are created per request and never mutated after ranking; the
// ranker works on copies.
type FlightOption struct {
	ID              string    `json:"id"`
	Airline         string    `json:"airline"`
	Price           float64   `json:"price"`
	Currency        string    `json:"currency"`
	Duration        string    `json:"duration"`
	DurationMinutes int       `json:"duration_minutes"`
	Stops           int       `json:"stops"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	Legs            []LegItem `json:"legs"`

	// Ranking output. Zero-valued until the option has been ranked.
	Score       float64 `json:"score"`
	Cheapest    bool    `json:"cheapest"`
	Fastest     bool    `json:"fastest"`
	NonStop     bool    `json:"non_stop"`
	Recommended bool    `json:"recommended"`
	Explanation string  `json:"explanation,omitempty"`
}

// TrueDurationMinutes sums flown and layover minutes over the leg sequence.
// Falls back to the parsed duration string when no legs are present.
func (f FlightOption) TrueDurationMinutes() int {
	if len(f.Legs) == 0 {
		return f.DurationMinutes
	}
	total := 0
	for _, item := range f.Legs {
		if item.Flight != nil {
			total += item.Flight.DurationMinutes
		}
		if item.Layover != nil {
			total += item.Layover.LayoverMinutes
		}
	}
	if total == 0 {
		return f.DurationMinutes
	}
	return total
}

package ports

import (
	"context"
	"time"

	"trip-route-service/internal/domain"
)

// One external flight-offer search tuple. Airport codes are IATA codes,
// not city names.
type FlightQuery struct {
	OriginCode      string
	DestinationCode string
	Date            time.Time
	Adults          int
	Children        int
	CabinClass      string
}

// Contract for searching bookable flight offers from an external source.
type FlightProvider interface {
	// Return normalized flight options for one search tuple.
	SearchFlights(ctx context.Context, q FlightQuery) ([]domain.FlightOption, error)
}

package ports

import (
	"context"

	"trip-route-service/internal/domain"
)

// Port: a boundary for resolving cities to airports.
type AirportRepository interface {
	// Resolve a city to its airport, if one exists. The second return
	// value is false when the city has no resolvable airport code.
	AirportByCity(ctx context.Context, city string) (domain.Airport, bool, error)

	// Retrieve every known gateway-eligible airport.
	ListAirports(ctx context.Context) ([]domain.Airport, error)
}

package ports

import (
	"context"

	"trip-route-service/internal/domain"
)

// Optional cache of normalized flight options keyed by search tuple.
// A miss returns ok=false with no error.
type OfferCache interface {
	Get(ctx context.Context, key string) ([]domain.FlightOption, bool, error)
	Put(ctx context.Context, key string, options []domain.FlightOption) error
}

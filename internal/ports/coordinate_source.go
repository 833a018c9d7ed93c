package ports

import "trip-route-service/internal/domain"

// Contract for looking up city coordinates. Implementations are
// caller-scoped lookup contexts, not hidden global state; unresolved
// cities return ok=false and are excluded from distance-based ordering.
type CoordinateSource interface {
	Lookup(city string) (domain.Coordinates, bool)
}

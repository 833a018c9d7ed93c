package services

import (
	"context"
	"log"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

const logBodyLimit = 300

// SearchAnchorFlights queries the flight provider for one anchor and
// degrades any failure to an empty list. Callers treat "no flights" as a
// valid, excludable outcome; there is no retry here beyond what the
// provider itself does.
func SearchAnchorFlights(
	ctx context.Context,
	provider ports.FlightProvider,
	q ports.FlightQuery,
) []domain.FlightOption {
	options, err := provider.SearchFlights(ctx, q)
	if err != nil {
		log.Printf(
			"flight search failed: origin=%s destination=%s date=%s err=%s",
			q.OriginCode, q.DestinationCode, q.Date.Format("2006-01-02"), truncate(err.Error(), logBodyLimit),
		)
		return []domain.FlightOption{}
	}
	return options
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package services

import (
	"fmt"
	"time"

	"trip-route-service/internal/domain"
)

// DeriveSchedule walks a structural route's leg sequence and produces
// arrival and departure calendar dates per city.
//
// Only cities in stayCities receive dates, with two fixed exceptions:
// the outbound gateway's arrival is always the trip start date and is
// never overwritten, and the inbound gateway's departure is always the
// inbound flight date so downstream displays always have a date to show.
// When the two gateways are the same city, the departure date comes from
// the inbound flight, not from nights arithmetic.
//
// InboundSlackDays is signed; a negative value (ground route arriving
// after the locked inbound flight) is reported as a warning.
func DeriveSchedule(route *domain.StructuralRoute, stayCities []string, nights map[string]int) *domain.DerivedSchedule {
	start := dateOnly(route.OutboundFlight.Date)
	inboundDate := dateOnly(route.InboundFlight.Date)
	outGateway := route.OutboundFlight.ToCity
	inGateway := route.InboundFlight.FromCity

	derived := &domain.DerivedSchedule{
		ArrivalDates:    make(map[string]time.Time),
		DepartureDates:  make(map[string]time.Time),
		DraftStayCities: append([]string(nil), stayCities...),
	}

	isStay := func(city string) bool { return derived.IsStayCity(city) }

	// Rule: the outbound gateway's arrival is pinned to the trip start.
	derived.ArrivalDates[outGateway] = start

	lastOffset := 0
	for _, leg := range route.GroundRoute {
		day := start.AddDate(0, 0, leg.DepartureDayOffset)

		if isStay(leg.FromCity) && leg.FromCity != inGateway {
			derived.DepartureDates[leg.FromCity] = day
		}
		if leg.ToCity != outGateway && (isStay(leg.ToCity) || leg.ToCity == inGateway) {
			derived.ArrivalDates[leg.ToCity] = day
		}

		lastOffset = leg.DepartureDayOffset
	}

	// The inbound gateway always departs on the locked flight date, even
	// when it is not itself a stay; this also covers the same-city
	// gateway case, which never uses nights arithmetic.
	derived.DepartureDates[inGateway] = inboundDate

	maxOffset := lastOffset
	if n, ok := nights[inGateway]; ok {
		maxOffset += stayDays(n)
	}
	derived.TotalTripDays = maxOffset + 1

	arrivalAtInbound := start.AddDate(0, 0, lastOffset)
	derived.InboundSlackDays = daysBetween(arrivalAtInbound, inboundDate)
	if derived.InboundSlackDays < 0 {
		derived.Warnings = append(derived.Warnings, fmt.Sprintf(
			"ground route reaches %s %d day(s) after the locked inbound flight date",
			inGateway, -derived.InboundSlackDays,
		))
	}

	return derived
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

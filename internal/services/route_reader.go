package services

import (
	"time"

	"trip-route-service/internal/domain"
)

// ReadRoute re-walks a finished structural route and emits its ordered,
// typed step sequence: one outbound flight, a travel step per ground leg
// each followed by a stay step when the destination is a draft stay city
// with at least one computed night, and one inbound flight.
//
// The traversal is pure and restartable: it performs no sorting, merging
// or role-based inference, and re-derives stay eligibility from the
// schedule's stay-city list on every read. Reading the same route twice
// yields identical sequences.
func ReadRoute(route *domain.StructuralRoute) []domain.RouteStep {
	if route == nil || route.Derived == nil {
		return []domain.RouteStep{}
	}
	derived := route.Derived
	start := dateOnly(route.OutboundFlight.Date)

	steps := make([]domain.RouteStep, 0, 2+2*len(route.GroundRoute))

	steps = append(steps, domain.RouteStep{
		Kind:     domain.StepOutboundFlight,
		FromCity: route.OutboundFlight.FromCity,
		ToCity:   route.OutboundFlight.ToCity,
		Arrival:  start,
	})

	maxOffset := derived.TotalTripDays - 1
	for i, leg := range route.GroundRoute {
		steps = append(steps, domain.RouteStep{
			Kind:      domain.StepTravel,
			FromCity:  leg.FromCity,
			ToCity:    leg.ToCity,
			Mode:      leg.Mode,
			DayOffset: leg.DepartureDayOffset,
		})

		// Nights at the destination run until the next departure; the
		// terminal city runs until the schedule's final day.
		nextOffset := maxOffset
		if i+1 < len(route.GroundRoute) {
			nextOffset = route.GroundRoute[i+1].DepartureDayOffset
		}
		nights := nextOffset - leg.DepartureDayOffset

		if derived.IsStayCity(leg.ToCity) && nights >= 1 {
			steps = append(steps, domain.RouteStep{
				Kind:      domain.StepStay,
				City:      leg.ToCity,
				Nights:    nights,
				DayOffset: leg.DepartureDayOffset,
				Arrival:   start.AddDate(0, 0, leg.DepartureDayOffset),
				Departure: stepDeparture(derived, leg.ToCity, start, nextOffset),
			})
		}
	}

	steps = append(steps, domain.RouteStep{
		Kind:      domain.StepInboundFlight,
		FromCity:  route.InboundFlight.FromCity,
		ToCity:    route.InboundFlight.ToCity,
		DayOffset: maxOffset,
		Departure: dateOnly(route.InboundFlight.Date),
	})

	return steps
}

func stepDeparture(derived *domain.DerivedSchedule, city string, start time.Time, nextOffset int) time.Time {
	if d, ok := derived.DepartureDates[city]; ok {
		return d
	}
	return start.AddDate(0, 0, nextOffset)
}

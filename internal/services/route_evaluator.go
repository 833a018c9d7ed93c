package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// Factual price/time ranges for a whole route, aggregated over both
// flight anchors. Metrics stay nil when either anchor lacks offer data;
// nothing is estimated and no "best" label is produced.
type RouteEvaluation struct {
	Complete       bool     `json:"complete"`
	PriceMin       *float64 `json:"price_min,omitempty"`
	PriceMax       *float64 `json:"price_max,omitempty"`
	FastestMinutes *int     `json:"fastest_minutes,omitempty"`
	Explanation    []string `json:"explanation"`
}

type anchorOffers struct {
	anchor  domain.FlightAnchor
	label   string
	options []domain.FlightOption
	reason  string
}

// EvaluateRoute queries the flight API once per anchor and derives only
// facts directly attributable to the returned offers. The route is
// complete only when both anchors returned data; otherwise the
// explanation states which anchor is missing and why.
func EvaluateRoute(
	ctx context.Context,
	outbound, inbound domain.FlightAnchor,
	passengers domain.Passengers,
	cabinClass string,
	airports ports.AirportRepository,
	provider ports.FlightProvider,
) (RouteEvaluation, error) {
	results := [2]anchorOffers{
		{anchor: outbound, label: "outbound"},
		{anchor: inbound, label: "inbound"},
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range results {
		i := i
		g.Go(func() error {
			results[i] = fetchAnchorOffers(gctx, results[i], passengers, cabinClass, airports, provider)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RouteEvaluation{}, fmt.Errorf("evaluate route: %w", err)
	}

	eval := RouteEvaluation{Complete: true, Explanation: []string{}}
	for _, r := range results {
		if r.reason != "" {
			eval.Complete = false
			eval.Explanation = append(eval.Explanation, fmt.Sprintf(
				"%s anchor %s -> %s has no offer data: %s",
				r.label, r.anchor.FromCity, r.anchor.ToCity, r.reason,
			))
		}
	}
	if !eval.Complete {
		return eval, nil
	}

	var priceMin, priceMax float64
	var fastest int
	for _, r := range results {
		lo, hi := priceRange(r.options)
		priceMin += lo
		priceMax += hi
		fastest += fastestOf(r.options)
	}
	eval.PriceMin = &priceMin
	eval.PriceMax = &priceMax
	eval.FastestMinutes = &fastest
	eval.Explanation = append(eval.Explanation, fmt.Sprintf(
		"round trip offers range from %.2f to %.2f; fastest combination takes %d minutes",
		priceMin, priceMax, fastest,
	))

	return eval, nil
}

func fetchAnchorOffers(
	ctx context.Context,
	r anchorOffers,
	passengers domain.Passengers,
	cabinClass string,
	airports ports.AirportRepository,
	provider ports.FlightProvider,
) anchorOffers {
	from, okFrom, err := airports.AirportByCity(ctx, r.anchor.FromCity)
	if err != nil {
		r.reason = "airport lookup failed"
		return r
	}
	to, okTo, err := airports.AirportByCity(ctx, r.anchor.ToCity)
	if err != nil {
		r.reason = "airport lookup failed"
		return r
	}
	if !okFrom || !okTo {
		r.reason = "unresolved airport code"
		return r
	}

	options, err := provider.SearchFlights(ctx, ports.FlightQuery{
		OriginCode:      from.Code,
		DestinationCode: to.Code,
		Date:            r.anchor.Date,
		Adults:          passengers.Adults,
		Children:        passengers.Children,
		CabinClass:      cabinClass,
	})
	if err != nil {
		r.reason = "flight API error"
		return r
	}
	if len(options) == 0 {
		r.reason = "zero offers returned"
		return r
	}

	r.options = options
	return r
}

func priceRange(flights []domain.FlightOption) (lo, hi float64) {
	for i, f := range flights {
		if i == 0 || f.Price < lo {
			lo = f.Price
		}
		if i == 0 || f.Price > hi {
			hi = f.Price
		}
	}
	return lo, hi
}

func fastestOf(flights []domain.FlightOption) int {
	best := 0
	for i, f := range flights {
		m := f.TrueDurationMinutes()
		if i == 0 || m < best {
			best = m
		}
	}
	return best
}

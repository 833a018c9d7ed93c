package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// Bound on concurrent gateway evaluations; each evaluation issues two
// external flight searches of its own.
const maxGatewayFanout = 4

type PlanGatewaysRequest struct {
	OriginCity       string
	Stops            []domain.DraftStop
	EarliestStart    time.Time
	LatestEnd        time.Time
	Passengers       domain.Passengers
	CabinClass       string
	MaxStops         *int
	AllowedCountries []string
	ExcludedAirlines []string

	// Acceptable per-flight price bounds. A zero BudgetMax means no
	// budget constraint.
	BudgetMin float64
	BudgetMax float64
}

// PlanGateways resolves candidate gateways for a trip and scores each by
// real bookable flights.
//
// Outbound and inbound searches for every gateway run concurrently; a
// failed or empty search excludes that gateway rather than failing the
// plan. Results are sorted best to worst by composite score.
func PlanGateways(
	ctx context.Context,
	req PlanGatewaysRequest,
	airports ports.AirportRepository,
	coords ports.CoordinateSource,
	provider ports.FlightProvider,
) ([]domain.GatewayOption, error) {
	origin, ok, err := airports.AirportByCity(ctx, req.OriginCity)
	if err != nil {
		return nil, fmt.Errorf("plan gateways: resolve origin %q: %w", req.OriginCity, err)
	}
	if !ok {
		// An origin without an airport cannot anchor any flights.
		return []domain.GatewayOption{}, nil
	}

	candidates, err := ResolveGateways(ctx, ResolveGatewaysRequest{
		OriginCity:       req.OriginCity,
		Stops:            req.Stops,
		AllowedCountries: req.AllowedCountries,
	}, airports, coords)
	if err != nil {
		return nil, fmt.Errorf("plan gateways: %w", err)
	}
	if len(candidates) == 0 {
		return []domain.GatewayOption{}, nil
	}

	var mu sync.Mutex
	options := make([]domain.GatewayOption, 0, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxGatewayFanout)

	for _, gateway := range candidates {
		gateway := gateway
		g.Go(func() error {
			option, ok := evaluateGateway(gctx, req, origin, gateway, provider)
			if !ok {
				return nil
			}
			mu.Lock()
			options = append(options, option)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan gateways: %w", err)
	}

	SortGatewayOptions(options)
	return options, nil
}

// evaluateGateway fetches and ranks outbound and inbound flights for one
// gateway. Either direction coming back empty excludes the gateway.
func evaluateGateway(
	ctx context.Context,
	req PlanGatewaysRequest,
	origin, gateway domain.Airport,
	provider ports.FlightProvider,
) (domain.GatewayOption, bool) {
	var outbound, inbound []domain.FlightOption

	// The two directions are independent external calls.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		outbound = SearchAnchorFlights(ctx, provider, ports.FlightQuery{
			OriginCode:      origin.Code,
			DestinationCode: gateway.Code,
			Date:            req.EarliestStart,
			Adults:          req.Passengers.Adults,
			Children:        req.Passengers.Children,
			CabinClass:      req.CabinClass,
		})
	}()
	go func() {
		defer wg.Done()
		inbound = SearchAnchorFlights(ctx, provider, ports.FlightQuery{
			OriginCode:      gateway.Code,
			DestinationCode: origin.Code,
			Date:            req.LatestEnd,
			Adults:          req.Passengers.Adults,
			Children:        req.Passengers.Children,
			CabinClass:      req.CabinClass,
		})
	}()
	wg.Wait()

	outbound = applyPreferences(outbound, req)
	inbound = applyPreferences(inbound, req)

	rankedOut := RankFlights(outbound)
	rankedIn := RankFlights(inbound)
	if len(rankedOut) == 0 || len(rankedIn) == 0 {
		return domain.GatewayOption{}, false
	}

	score, explanation := ScoreGatewayPair(rankedOut, rankedIn)

	return domain.GatewayOption{
		Outbound: domain.FlightAnchor{
			FromCity: origin.City,
			ToCity:   gateway.City,
			Date:     req.EarliestStart,
		},
		Inbound: domain.FlightAnchor{
			FromCity: gateway.City,
			ToCity:   origin.City,
			Date:     req.LatestEnd,
		},
		OutboundFlights: rankedOut,
		InboundFlights:  rankedIn,
		Score:           score,
		Explanation:     explanation,
	}, true
}

func applyPreferences(flights []domain.FlightOption, req PlanGatewaysRequest) []domain.FlightOption {
	flights = FilterOperators(flights, req.ExcludedAirlines)
	out := flights[:0]
	for _, f := range flights {
		if req.MaxStops != nil && f.Stops > *req.MaxStops {
			continue
		}
		if req.BudgetMax > 0 && (f.Price < req.BudgetMin || f.Price > req.BudgetMax) {
			continue
		}
		out = append(out, f)
	}
	return out
}

package services

import (
	"context"
	"fmt"
	"strings"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/geo"
	"trip-route-service/internal/ports"
)

// Trip scope thresholds. A stop farther than longHaulThresholdKm from the
// origin makes the trip long-haul, which widens the nearest-gateway
// search radius.
const (
	longHaulThresholdKm = 3500.0
	shortHaulGatewayKm  = 600.0
	longHaulGatewayKm   = 1500.0
)

type ResolveGatewaysRequest struct {
	OriginCity       string
	Stops            []domain.DraftStop
	AllowedCountries []string
}

// ResolveGateways maps draft stops to candidate gateway airports.
//
// A stop that resolves directly to an airport code is used as-is.
// Otherwise the nearest gateway-eligible airport within the allowed
// countries and the scope-dependent radius is chosen. A stop that cannot
// be resolved either way is excluded, never substituted with an
// arbitrary city; empty input yields an empty list.
func ResolveGateways(
	ctx context.Context,
	req ResolveGatewaysRequest,
	airports ports.AirportRepository,
	coords ports.CoordinateSource,
) ([]domain.Airport, error) {
	if len(req.Stops) == 0 {
		return []domain.Airport{}, nil
	}

	allowed := make(map[string]struct{}, len(req.AllowedCountries))
	for _, c := range req.AllowedCountries {
		allowed[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}

	originCoord, originKnown := coords.Lookup(req.OriginCity)

	var all []domain.Airport
	seen := make(map[string]struct{})
	out := make([]domain.Airport, 0, len(req.Stops))

	for _, stop := range req.Stops {
		city := strings.TrimSpace(stop.City)
		if city == "" {
			continue
		}

		airport, ok, err := airports.AirportByCity(ctx, city)
		if err != nil {
			return nil, fmt.Errorf("resolve gateways: airport for %q: %w", city, err)
		}

		if !ok {
			// Lazy-load the full airport list only when a fallback search
			// is actually needed.
			if all == nil {
				all, err = airports.ListAirports(ctx)
				if err != nil {
					return nil, fmt.Errorf("resolve gateways: list airports: %w", err)
				}
			}
			airport, ok = nearestGateway(city, originCoord, originKnown, all, allowed, coords)
		}
		if !ok {
			// Unresolvable: excluded from candidates (fail narrow).
			continue
		}

		if _, dup := seen[airport.Code]; dup {
			continue
		}
		seen[airport.Code] = struct{}{}
		out = append(out, airport)
	}

	return out, nil
}

// nearestGateway finds the closest airport-backed city to a stop without
// its own airport code, restricted to allowed countries and the trip
// scope radius.
func nearestGateway(
	city string,
	originCoord domain.Coordinates,
	originKnown bool,
	all []domain.Airport,
	allowed map[string]struct{},
	coords ports.CoordinateSource,
) (domain.Airport, bool) {
	stopCoord, ok := coords.Lookup(city)
	if !ok {
		return domain.Airport{}, false
	}

	radius := shortHaulGatewayKm
	if originKnown && geo.HaversineKm(originCoord, stopCoord) > longHaulThresholdKm {
		radius = longHaulGatewayKm
	}

	var best domain.Airport
	bestDist := radius
	found := false

	for _, a := range all {
		if len(allowed) > 0 {
			if _, ok := allowed[strings.ToLower(a.Country)]; !ok {
				continue
			}
		}

		d := geo.HaversineKm(stopCoord, domain.Coordinates{Lat: a.Lat, Lon: a.Lon})
		// Tie-breaker ensures deterministic selection when distances are equal.
		if d < bestDist || (d == bestDist && found && a.City < best.City) {
			bestDist = d
			best = a
			found = true
		}
	}

	return best, found
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/geo"
	"trip-route-service/internal/ports"
)

// Reversal rule thresholds for the avoid-backtracking preference.
const (
	backtrackTriggerRatio   = 1.5
	backtrackMinImprovement = 0.30
)

const defaultTravelMode = "ground"

type GroundRouteRequest struct {
	Outbound domain.FlightAnchor
	Inbound  domain.FlightAnchor

	// Stops may include the gateway cities; those entries contribute
	// their desired nights to the schedule but are never ordered as
	// base cities.
	Stops             []domain.DraftStop
	DraftStayCities   []string
	AvoidBacktracking bool
	Mode              string
}

// BuildGroundRoute lays out a linear ground route between two locked
// gateway endpoints using a greedy nearest-neighbor heuristic over
// great-circle distance.
//
// The gateways are fixed: they are never reordered, removed, or emitted
// as intermediate BASE legs. Base cities without resolvable coordinates
// are appended after the ordered ones in input order rather than placed
// by guesswork. The derived calendar schedule is computed in the same
// call; the returned route is immutable output.
func BuildGroundRoute(req GroundRouteRequest, coords ports.CoordinateSource) (*domain.StructuralRoute, error) {
	outGateway := strings.TrimSpace(req.Outbound.ToCity)
	inGateway := strings.TrimSpace(req.Inbound.FromCity)
	if outGateway == "" || inGateway == "" {
		return nil, errors.New("build ground route: both gateway cities must be non-empty")
	}
	if req.Inbound.Date.Before(req.Outbound.Date) {
		return nil, fmt.Errorf(
			"build ground route: inbound date %s precedes outbound date %s",
			req.Inbound.Date.Format("2006-01-02"), req.Outbound.Date.Format("2006-01-02"),
		)
	}

	mode := strings.TrimSpace(req.Mode)
	if mode == "" {
		mode = defaultTravelMode
	}

	nights := make(map[string]int, len(req.Stops))
	base := make([]string, 0, len(req.Stops))
	seen := make(map[string]struct{}, len(req.Stops))
	for _, stop := range req.Stops {
		city := strings.TrimSpace(stop.City)
		if city == "" {
			continue
		}
		if _, dup := seen[city]; dup {
			return nil, fmt.Errorf("build ground route: duplicate stop %q", city)
		}
		seen[city] = struct{}{}
		nights[city] = stop.DesiredNights

		// Gateway stops carry nights only; the path through them is fixed.
		if city == outGateway || city == inGateway {
			continue
		}
		base = append(base, city)
	}

	ordered, unplaced := orderByNearestNeighbor(outGateway, base, coords)

	if req.AvoidBacktracking {
		ordered = maybeReverse(ordered, inGateway, coords)
	}
	ordered = append(ordered, unplaced...)

	legs := buildLegs(outGateway, inGateway, ordered, nights, mode)

	route := &domain.StructuralRoute{
		OutboundFlight: req.Outbound,
		InboundFlight:  req.Inbound,
		GroundRoute:    legs,
	}
	route.Derived = DeriveSchedule(route, req.DraftStayCities, nights)

	return route, nil
}

// orderByNearestNeighbor greedily orders cities starting at the outbound
// gateway, repeatedly picking the unvisited city nearest the current one.
// Cities without coordinates are returned separately in input order.
func orderByNearestNeighbor(start string, cities []string, coords ports.CoordinateSource) (ordered, unplaced []string) {
	located := make(map[string]domain.Coordinates, len(cities))
	remaining := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		if coord, ok := coords.Lookup(c); ok {
			located[c] = coord
			remaining[c] = struct{}{}
		} else {
			unplaced = append(unplaced, c)
		}
	}

	current, currentKnown := coords.Lookup(start)
	ordered = make([]string, 0, len(remaining))

	for len(remaining) > 0 {
		var best string
		bestDist := 0.0

		// Greedy step: minimum great-circle distance from the current
		// position, lexicographic tie-breaker for determinism.
		for c := range remaining {
			d := 0.0
			if currentKnown {
				d = geo.HaversineKm(current, located[c])
			}
			if best == "" || d < bestDist || (d == bestDist && c < best) {
				best = c
				bestDist = d
			}
		}

		ordered = append(ordered, best)
		current = located[best]
		currentKnown = true
		delete(remaining, best)
	}

	return ordered, unplaced
}

// maybeReverse applies the avoid-backtracking rule: when the greedy order
// ends far from the inbound gateway (more than 1.5x the distance the
// first city would have), the order is reversed, but only if reversing
// shrinks the final backtrack distance by at least 30%.
func maybeReverse(ordered []string, inGateway string, coords ports.CoordinateSource) []string {
	if len(ordered) < 2 {
		return ordered
	}

	gatewayCoord, ok := coords.Lookup(inGateway)
	if !ok {
		return ordered
	}
	firstCoord, okFirst := coords.Lookup(ordered[0])
	lastCoord, okLast := coords.Lookup(ordered[len(ordered)-1])
	if !okFirst || !okLast {
		return ordered
	}

	lastDist := geo.HaversineKm(lastCoord, gatewayCoord)
	firstDist := geo.HaversineKm(firstCoord, gatewayCoord)

	if lastDist <= backtrackTriggerRatio*firstDist {
		return ordered
	}
	// Reversing makes the current first city terminal.
	if firstDist > (1-backtrackMinImprovement)*lastDist {
		return ordered
	}

	reversed := make([]string, len(ordered))
	for i, c := range ordered {
		reversed[len(ordered)-1-i] = c
	}
	return reversed
}

// buildLegs emits the linear leg sequence with accumulated day offsets.
// Day 0 is the outbound gateway's arrival day; each stay accumulates
// max(1, desiredNights).
func buildLegs(outGateway, inGateway string, ordered []string, nights map[string]int, mode string) []domain.GroundLeg {
	offset := 0
	if n, ok := nights[outGateway]; ok {
		offset += stayDays(n)
	}

	legs := make([]domain.GroundLeg, 0, len(ordered)+1)

	// Same gateway both ways with nothing to visit: no ground movement
	// at all, rather than a self-referential leg.
	if len(ordered) == 0 && outGateway == inGateway {
		return legs
	}

	current := outGateway
	for _, city := range ordered {
		legs = append(legs, domain.GroundLeg{
			FromCity:           current,
			ToCity:             city,
			DepartureDayOffset: offset,
			Role:               domain.RoleBase,
			Mode:               mode,
		})
		offset += stayDays(nights[city])
		current = city
	}

	legs = append(legs, domain.GroundLeg{
		FromCity:           current,
		ToCity:             inGateway,
		DepartureDayOffset: offset,
		Role:               domain.RoleTransfer,
		Mode:               mode,
	})

	return legs
}

func stayDays(desiredNights int) int {
	if desiredNights < 1 {
		return 1
	}
	return desiredNights
}

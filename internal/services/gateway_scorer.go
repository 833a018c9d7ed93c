package services

import (
	"fmt"
	"math"
	"slices"

	"trip-route-service/internal/domain"
)

// Gateway composite weights (lower composite is better). The reliability
// term is scaled so that an unreliable pair costs up to 1000 points.
const (
	gatewayWeightPrice       = 0.6
	gatewayWeightTravelTime  = 0.3
	gatewayReliabilityFactor = 1000.0
)

// ScoreGatewayPair aggregates the outbound and inbound flight sets of one
// gateway pair into a single comparable score.
//
// totalPrice and totalTravelTimeMinutes sum the cheapest outbound and
// cheapest inbound flights. reliability = 0.4*min(1, optionCount/10) +
// 0.6*max(0, 1 - avgStops/3).
func ScoreGatewayPair(outbound, inbound []domain.FlightOption) (domain.GatewayScore, []string) {
	cheapestOut := cheapestOf(outbound)
	cheapestIn := cheapestOf(inbound)

	totalPrice := cheapestOut.Price + cheapestIn.Price
	totalMinutes := cheapestOut.DurationMinutes + cheapestIn.DurationMinutes

	optionCount := len(outbound) + len(inbound)
	stops := 0
	for _, f := range outbound {
		stops += f.Stops
	}
	for _, f := range inbound {
		stops += f.Stops
	}

	avgStops := 0.0
	if optionCount > 0 {
		avgStops = float64(stops) / float64(optionCount)
	}

	reliability := 0.4*math.Min(1, float64(optionCount)/10) +
		0.6*math.Max(0, 1-avgStops/3)

	score := domain.GatewayScore{
		TotalPrice:             totalPrice,
		TotalTravelTimeMinutes: totalMinutes,
		ReliabilityScore:       reliability,
	}
	score.Composite = gatewayWeightPrice*totalPrice +
		gatewayWeightTravelTime*float64(totalMinutes) +
		gatewayReliabilityFactor*(1-reliability)

	explanation := []string{
		fmt.Sprintf("Cheapest round trip totals %.2f %s", totalPrice, currencyOf(cheapestOut, cheapestIn)),
		fmt.Sprintf("Total travel time %d minutes", totalMinutes),
		fmt.Sprintf("%d flight options found, averaging %.1f stops", optionCount, avgStops),
	}

	return score, explanation
}

// SortGatewayOptions orders options ascending by composite score, with a
// deterministic city tie-breaker.
func SortGatewayOptions(options []domain.GatewayOption) {
	slices.SortStableFunc(options, func(a, b domain.GatewayOption) int {
		if a.Score.Composite < b.Score.Composite {
			return -1
		}
		if a.Score.Composite > b.Score.Composite {
			return 1
		}
		if a.Outbound.ToCity < b.Outbound.ToCity {
			return -1
		}
		if a.Outbound.ToCity > b.Outbound.ToCity {
			return 1
		}
		return 0
	})
}

func cheapestOf(flights []domain.FlightOption) domain.FlightOption {
	var best domain.FlightOption
	for i, f := range flights {
		if i == 0 || f.Price < best.Price {
			best = f
		}
	}
	return best
}

func currencyOf(flights ...domain.FlightOption) string {
	for _, f := range flights {
		if f.Currency != "" {
			return f.Currency
		}
	}
	return "USD"
}

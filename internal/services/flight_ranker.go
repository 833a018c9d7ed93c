package services

import (
	"math"
	"sort"
	"strings"

	"trip-route-service/internal/domain"
)

// Ranking weights. Min-max normalized per candidate set; lower score is
// better.
const (
	weightPrice    = 0.5
	weightDuration = 0.3
	weightStops    = 0.2
)

// Shortlist size for large candidate sets.
const shortlistSize = 5

// FilterOperators removes flights operated by excluded airlines (e.g. an
// operator acting purely as filler capacity). Returns a new slice; an
// empty result is a valid outcome.
func FilterOperators(flights []domain.FlightOption, excluded []string) []domain.FlightOption {
	if len(excluded) == 0 {
		out := make([]domain.FlightOption, len(flights))
		copy(out, flights)
		return out
	}

	drop := make(map[string]struct{}, len(excluded))
	for _, a := range excluded {
		drop[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}

	out := make([]domain.FlightOption, 0, len(flights))
	for _, f := range flights {
		if _, ok := drop[strings.ToLower(f.Airline)]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

// RankFlights reduces an offer set to a small, explainable shortlist.
//
// The cheapest flight, the fastest flight (by true minute sum over legs
// and layovers) and a non-stop flight, if one exists, are always present
// in the output. Sets of at most five flights pass through whole. The
// final order is fastest-tagged flights, then cheapest-tagged, then the
// rest ascending by score, and exactly the first flight is marked
// recommended. Empty input yields an empty slice; nothing is fabricated.
// The input slice is not mutated.
func RankFlights(flights []domain.FlightOption) []domain.FlightOption {
	if len(flights) == 0 {
		return []domain.FlightOption{}
	}

	ranked := make([]domain.FlightOption, len(flights))
	copy(ranked, flights)

	minutes := make([]int, len(ranked))
	for i, f := range ranked {
		minutes[i] = f.TrueDurationMinutes()
	}

	minPrice, maxPrice := math.MaxFloat64, -math.MaxFloat64
	minMin, maxMin := math.MaxInt, math.MinInt
	minStops, maxStops := math.MaxInt, math.MinInt
	for i, f := range ranked {
		minPrice = math.Min(minPrice, f.Price)
		maxPrice = math.Max(maxPrice, f.Price)
		if minutes[i] < minMin {
			minMin = minutes[i]
		}
		if minutes[i] > maxMin {
			maxMin = minutes[i]
		}
		if f.Stops < minStops {
			minStops = f.Stops
		}
		if f.Stops > maxStops {
			maxStops = f.Stops
		}
	}

	cheapestIdx, fastestIdx, nonStopIdx := -1, -1, -1
	for i, f := range ranked {
		ranked[i].Score = weightPrice*normalize(f.Price, minPrice, maxPrice) +
			weightDuration*normalize(float64(minutes[i]), float64(minMin), float64(maxMin)) +
			weightStops*normalize(float64(f.Stops), float64(minStops), float64(maxStops))

		ranked[i].Cheapest = f.Price == minPrice
		ranked[i].Fastest = minutes[i] == minMin
		ranked[i].NonStop = f.Stops == 0
		ranked[i].Recommended = false
		ranked[i].Explanation = ""

		if cheapestIdx == -1 && ranked[i].Cheapest {
			cheapestIdx = i
		}
		if fastestIdx == -1 && ranked[i].Fastest {
			fastestIdx = i
		}
		if nonStopIdx == -1 && ranked[i].NonStop {
			nonStopIdx = i
		}
	}

	selected := ranked
	if len(ranked) > shortlistSize {
		selected = shortlist(ranked, cheapestIdx, fastestIdx, nonStopIdx)
	}

	orderForDisplay(selected)

	selected[0].Recommended = true
	selected[0].Explanation = recommendReason(selected[0])

	return selected
}

func normalize(v, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (v - min) / (max - min)
}

// shortlist picks the lowest-scored flights, force-includes the required
// cheapest/fastest/non-stop flights, then trims back to size while always
// preserving the required ones.
func shortlist(ranked []domain.FlightOption, required ...int) []domain.FlightOption {
	byScore := make([]int, len(ranked))
	for i := range byScore {
		byScore[i] = i
	}
	sort.SliceStable(byScore, func(a, b int) bool {
		ia, ib := byScore[a], byScore[b]
		if ranked[ia].Score != ranked[ib].Score {
			return ranked[ia].Score < ranked[ib].Score
		}
		if ranked[ia].Price != ranked[ib].Price {
			return ranked[ia].Price < ranked[ib].Price
		}
		return ranked[ia].ID < ranked[ib].ID
	})

	keep := make(map[int]struct{}, shortlistSize)
	for _, idx := range byScore[:shortlistSize] {
		keep[idx] = struct{}{}
	}
	for _, idx := range required {
		if idx >= 0 {
			keep[idx] = struct{}{}
		}
	}

	// Re-trim: drop the worst-scored non-required flights until the
	// shortlist is back at size.
	if len(keep) > shortlistSize {
		requiredSet := make(map[int]struct{}, len(required))
		for _, idx := range required {
			if idx >= 0 {
				requiredSet[idx] = struct{}{}
			}
		}
		for i := len(byScore) - 1; i >= 0 && len(keep) > shortlistSize; i-- {
			idx := byScore[i]
			if _, isRequired := requiredSet[idx]; isRequired {
				continue
			}
			delete(keep, idx)
		}
	}

	out := make([]domain.FlightOption, 0, len(keep))
	for _, idx := range byScore {
		if _, ok := keep[idx]; ok {
			out = append(out, ranked[idx])
		}
	}
	return out
}

// orderForDisplay sorts in place: fastest-tagged flights first, then
// cheapest-tagged, then the remainder ascending by score.
func orderForDisplay(flights []domain.FlightOption) {
	group := func(f domain.FlightOption) int {
		switch {
		case f.Fastest:
			return 0
		case f.Cheapest:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(flights, func(a, b int) bool {
		ga, gb := group(flights[a]), group(flights[b])
		if ga != gb {
			return ga < gb
		}
		if flights[a].Score != flights[b].Score {
			return flights[a].Score < flights[b].Score
		}
		return flights[a].ID < flights[b].ID
	})
}

func recommendReason(f domain.FlightOption) string {
	switch {
	case f.Fastest && f.Cheapest:
		return "Cheapest and fastest option in this set"
	case f.Fastest && f.NonStop:
		return "Fastest option, non-stop"
	case f.Fastest:
		return "Fastest option in this set"
	case f.Cheapest:
		return "Cheapest option in this set"
	default:
		return "Best weighted balance of price, duration and stops"
	}
}

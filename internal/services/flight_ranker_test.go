package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"trip-route-service/internal/domain"
)

func option(id string, price float64, minutes, stops int) domain.FlightOption {
	return domain.FlightOption{
		ID:              id,
		Airline:         "XX",
		Price:           price,
		Currency:        "USD",
		DurationMinutes: minutes,
		Stops:           stops,
	}
}

func TestRankFlightsEmptyInput(t *testing.T) {
	ranked := RankFlights(nil)
	require.NotNil(t, ranked)
	require.Empty(t, ranked)
}

func TestRankFlightsSingleFlight(t *testing.T) {
	ranked := RankFlights([]domain.FlightOption{option("only", 320, 540, 1)})

	require.Len(t, ranked, 1)
	require.True(t, ranked[0].Cheapest)
	require.True(t, ranked[0].Fastest)
	require.False(t, ranked[0].NonStop)
	require.True(t, ranked[0].Recommended)
	require.Equal(t, "Cheapest and fastest option in this set", ranked[0].Explanation)
}

func TestRankFlightsSmallSetPassesWhole(t *testing.T) {
	flights := []domain.FlightOption{
		option("cheap", 100, 300, 1),
		option("fast", 200, 120, 0),
		option("mid", 150, 200, 1),
	}

	ranked := RankFlights(flights)
	require.Len(t, ranked, 3)

	// Fastest-tagged flights lead the display order.
	require.Equal(t, "fast", ranked[0].ID)
	require.True(t, ranked[0].Fastest)
	require.True(t, ranked[0].NonStop)
	require.Equal(t, "cheap", ranked[1].ID)
	require.True(t, ranked[1].Cheapest)

	recommended := 0
	for _, f := range ranked {
		if f.Recommended {
			recommended++
		}
	}
	require.Equal(t, 1, recommended)
	require.True(t, ranked[0].Recommended)
	require.Equal(t, "Fastest option, non-stop", ranked[0].Explanation)

	// Input order is untouched.
	require.Equal(t, "cheap", flights[0].ID)
	require.False(t, flights[0].Recommended)
}

func TestRankFlightsShortlistKeepsRequiredFlights(t *testing.T) {
	// The cheapest flight scores badly on every other axis; it must still
	// survive the shortlist trim.
	flights := []domain.FlightOption{option("cheap-slow", 100, 900, 3)}
	for i := 0; i < 7; i++ {
		flights = append(flights, option(
			fmt.Sprintf("f%d", i),
			200+float64(i)*10,
			120+i*10,
			0,
		))
	}

	ranked := RankFlights(flights)
	require.Len(t, ranked, 5)

	ids := make(map[string]bool, len(ranked))
	for _, f := range ranked {
		ids[f.ID] = true
	}
	require.True(t, ids["cheap-slow"], "cheapest flight missing from shortlist")
	require.True(t, ids["f0"], "fastest flight missing from shortlist")

	require.True(t, ranked[0].Recommended)
	require.True(t, ranked[0].Fastest)
	recommended := 0
	for _, f := range ranked {
		if f.Recommended {
			recommended++
		}
	}
	require.Equal(t, 1, recommended)
}

func TestRankFlightsCheapestAlsoFastest(t *testing.T) {
	// Six offers where one flight is both the cheapest and the fastest:
	// it carries both tags, leads the display order and is recommended.
	flights := []domain.FlightOption{option("star", 100, 100, 0)}
	for i := 0; i < 5; i++ {
		flights = append(flights, option(
			fmt.Sprintf("f%d", i),
			150+float64(i)*10,
			200+i*10,
			1,
		))
	}

	ranked := RankFlights(flights)
	require.Len(t, ranked, 5)

	require.Equal(t, "star", ranked[0].ID)
	require.True(t, ranked[0].Cheapest)
	require.True(t, ranked[0].Fastest)
	require.True(t, ranked[0].Recommended)
	require.Equal(t, "Cheapest and fastest option in this set", ranked[0].Explanation)

	cheapest, fastest := 0, 0
	for _, f := range ranked {
		if f.Cheapest {
			cheapest++
		}
		if f.Fastest {
			fastest++
		}
	}
	require.Equal(t, 1, cheapest)
	require.Equal(t, 1, fastest)
}

func TestFilterOperators(t *testing.T) {
	flights := []domain.FlightOption{
		{ID: "a", Airline: "6E"},
		{ID: "b", Airline: "AT"},
		{ID: "c", Airline: "TP"},
	}

	kept := FilterOperators(flights, []string{"at"})
	require.Len(t, kept, 2)
	require.Equal(t, "a", kept[0].ID)
	require.Equal(t, "c", kept[1].ID)

	all := FilterOperators(flights, nil)
	require.Len(t, all, 3)

	none := FilterOperators(flights, []string{"6E", "AT", "TP"})
	require.Empty(t, none)
}

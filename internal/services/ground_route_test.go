package services

import (
	"testing"
	"time"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/geo"
)

func moroccoRequest(start, inbound time.Time) GroundRouteRequest {
	return GroundRouteRequest{
		Outbound: domain.FlightAnchor{FromCity: "Bangalore", ToCity: "Marrakech", Date: start},
		Inbound:  domain.FlightAnchor{FromCity: "Casablanca", ToCity: "Bangalore", Date: inbound},
		Stops: []domain.DraftStop{
			{City: "Marrakech", DesiredNights: 2},
			{City: "Fes", DesiredNights: 3},
			{City: "Chefchaouen", DesiredNights: 2},
			{City: "Casablanca", DesiredNights: 2},
		},
		DraftStayCities: []string{"Marrakech", "Fes", "Chefchaouen", "Casablanca"},
	}
}

func TestBuildGroundRouteMoroccoSchedule(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inbound := start.AddDate(0, 0, 10)

	route, err := BuildGroundRoute(moroccoRequest(start, inbound), geo.NewIndex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	legs := route.GroundRoute
	if len(legs) != 3 {
		t.Fatalf("expected 3 legs, got %d", len(legs))
	}

	want := []struct {
		from, to string
		offset   int
		role     domain.LegRole
	}{
		{"Marrakech", "Fes", 2, domain.RoleBase},
		{"Fes", "Chefchaouen", 5, domain.RoleBase},
		{"Chefchaouen", "Casablanca", 7, domain.RoleTransfer},
	}
	for i, w := range want {
		if legs[i].FromCity != w.from || legs[i].ToCity != w.to {
			t.Fatalf("leg %d = %s -> %s, want %s -> %s", i, legs[i].FromCity, legs[i].ToCity, w.from, w.to)
		}
		if legs[i].DepartureDayOffset != w.offset {
			t.Fatalf("leg %d offset = %d, want %d", i, legs[i].DepartureDayOffset, w.offset)
		}
		if legs[i].Role != w.role {
			t.Fatalf("leg %d role = %s, want %s", i, legs[i].Role, w.role)
		}
		if legs[i].Mode != "ground" {
			t.Fatalf("leg %d mode = %q, want ground", i, legs[i].Mode)
		}
	}

	derived := route.Derived
	if derived == nil {
		t.Fatal("expected derived schedule")
	}
	if derived.TotalTripDays != 10 {
		t.Fatalf("total trip days = %d, want 10", derived.TotalTripDays)
	}
	if derived.InboundSlackDays != 3 {
		t.Fatalf("inbound slack = %d, want 3", derived.InboundSlackDays)
	}
	if len(derived.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", derived.Warnings)
	}

	if !derived.ArrivalDates["Marrakech"].Equal(start) {
		t.Fatalf("Marrakech arrival = %v, want trip start", derived.ArrivalDates["Marrakech"])
	}
	if !derived.ArrivalDates["Fes"].Equal(start.AddDate(0, 0, 2)) {
		t.Fatalf("Fes arrival = %v, want start+2", derived.ArrivalDates["Fes"])
	}
	if !derived.DepartureDates["Chefchaouen"].Equal(start.AddDate(0, 0, 7)) {
		t.Fatalf("Chefchaouen departure = %v, want start+7", derived.DepartureDates["Chefchaouen"])
	}
	if !derived.DepartureDates["Casablanca"].Equal(inbound) {
		t.Fatalf("Casablanca departure = %v, want inbound flight date", derived.DepartureDates["Casablanca"])
	}
}

func TestBuildGroundRouteGatewaysStayFixed(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	route, err := BuildGroundRoute(moroccoRequest(start, start.AddDate(0, 0, 10)), geo.NewIndex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	legs := route.GroundRoute
	if legs[0].FromCity != "Marrakech" {
		t.Fatalf("route must start at the outbound gateway, got %q", legs[0].FromCity)
	}
	if legs[len(legs)-1].ToCity != "Casablanca" {
		t.Fatalf("route must end at the inbound gateway, got %q", legs[len(legs)-1].ToCity)
	}

	// No city is revisited and gateways never appear as intermediate stops.
	visited := map[string]int{}
	for _, leg := range legs {
		visited[leg.ToCity]++
	}
	for city, n := range visited {
		if n != 1 {
			t.Fatalf("city %q visited %d times", city, n)
		}
	}
	for _, leg := range legs[:len(legs)-1] {
		if leg.ToCity == "Marrakech" || leg.ToCity == "Casablanca" {
			t.Fatalf("gateway %q emitted as intermediate destination", leg.ToCity)
		}
	}
}

func TestBuildGroundRouteAvoidBacktrackingReverses(t *testing.T) {
	index := geo.NewIndex()
	index.Register("startgate", domain.Coordinates{Lat: 0, Lon: 0})
	index.Register("cityone", domain.Coordinates{Lat: 0, Lon: 1})
	index.Register("citytwo", domain.Coordinates{Lat: 0, Lon: 2})
	index.Register("citythree", domain.Coordinates{Lat: 0, Lon: 3})
	index.Register("endgate", domain.Coordinates{Lat: 0, Lon: 0.5})

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	req := GroundRouteRequest{
		Outbound: domain.FlightAnchor{FromCity: "Home", ToCity: "startgate", Date: start},
		Inbound:  domain.FlightAnchor{FromCity: "endgate", ToCity: "Home", Date: start.AddDate(0, 0, 6)},
		Stops: []domain.DraftStop{
			{City: "cityone", DesiredNights: 1},
			{City: "citytwo", DesiredNights: 1},
			{City: "citythree", DesiredNights: 1},
		},
		AvoidBacktracking: true,
	}

	route, err := BuildGroundRoute(req, index)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Greedy order ends at citythree, far from the inbound gateway;
	// reversing lands the terminal city next to it.
	got := make([]string, 0, 3)
	for _, leg := range route.GroundRoute[:3] {
		got = append(got, leg.ToCity)
	}
	want := []string{"citythree", "citytwo", "cityone"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBuildGroundRouteKeepsGreedyOrderWithoutPreference(t *testing.T) {
	index := geo.NewIndex()
	index.Register("startgate", domain.Coordinates{Lat: 0, Lon: 0})
	index.Register("cityone", domain.Coordinates{Lat: 0, Lon: 1})
	index.Register("citytwo", domain.Coordinates{Lat: 0, Lon: 2})
	index.Register("endgate", domain.Coordinates{Lat: 0, Lon: 0.5})

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	req := GroundRouteRequest{
		Outbound: domain.FlightAnchor{FromCity: "Home", ToCity: "startgate", Date: start},
		Inbound:  domain.FlightAnchor{FromCity: "endgate", ToCity: "Home", Date: start.AddDate(0, 0, 4)},
		Stops: []domain.DraftStop{
			{City: "citytwo", DesiredNights: 1},
			{City: "cityone", DesiredNights: 1},
		},
	}

	route, err := BuildGroundRoute(req, index)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.GroundRoute[0].ToCity != "cityone" || route.GroundRoute[1].ToCity != "citytwo" {
		t.Fatalf("expected nearest-neighbor order cityone, citytwo; got %s, %s",
			route.GroundRoute[0].ToCity, route.GroundRoute[1].ToCity)
	}
}

func TestBuildGroundRouteAppendsUnresolvedCities(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	req := GroundRouteRequest{
		Outbound: domain.FlightAnchor{FromCity: "Bangalore", ToCity: "Marrakech", Date: start},
		Inbound:  domain.FlightAnchor{FromCity: "Casablanca", ToCity: "Bangalore", Date: start.AddDate(0, 0, 8)},
		Stops: []domain.DraftStop{
			{City: "zzz", DesiredNights: 1},
			{City: "Fes", DesiredNights: 2},
		},
	}

	route, err := BuildGroundRoute(req, geo.NewIndex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The city without coordinates goes after every placed one.
	if route.GroundRoute[0].ToCity != "Fes" {
		t.Fatalf("first destination = %q, want Fes", route.GroundRoute[0].ToCity)
	}
	if route.GroundRoute[1].ToCity != "zzz" {
		t.Fatalf("second destination = %q, want zzz", route.GroundRoute[1].ToCity)
	}
}

func TestBuildGroundRouteRejectsBadInput(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	index := geo.NewIndex()

	dup := GroundRouteRequest{
		Outbound: domain.FlightAnchor{ToCity: "Marrakech", Date: start},
		Inbound:  domain.FlightAnchor{FromCity: "Casablanca", Date: start.AddDate(0, 0, 5)},
		Stops: []domain.DraftStop{
			{City: "Fes", DesiredNights: 1},
			{City: "Fes", DesiredNights: 2},
		},
	}
	if _, err := BuildGroundRoute(dup, index); err == nil {
		t.Fatal("expected error for duplicate stop")
	}

	backwards := GroundRouteRequest{
		Outbound: domain.FlightAnchor{ToCity: "Marrakech", Date: start},
		Inbound:  domain.FlightAnchor{FromCity: "Casablanca", Date: start.AddDate(0, 0, -1)},
	}
	if _, err := BuildGroundRoute(backwards, index); err == nil {
		t.Fatal("expected error for inbound date before outbound date")
	}

	noGateway := GroundRouteRequest{
		Outbound: domain.FlightAnchor{ToCity: "", Date: start},
		Inbound:  domain.FlightAnchor{FromCity: "Casablanca", Date: start.AddDate(0, 0, 5)},
	}
	if _, err := BuildGroundRoute(noGateway, index); err == nil {
		t.Fatal("expected error for empty gateway city")
	}
}

func TestBuildGroundRouteNegativeSlackWarns(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	req := GroundRouteRequest{
		Outbound:        domain.FlightAnchor{FromCity: "Bangalore", ToCity: "Marrakech", Date: start},
		Inbound:         domain.FlightAnchor{FromCity: "Casablanca", ToCity: "Bangalore", Date: start.AddDate(0, 0, 2)},
		Stops:           []domain.DraftStop{{City: "Fes", DesiredNights: 5}},
		DraftStayCities: []string{"Fes"},
	}

	route, err := BuildGroundRoute(req, geo.NewIndex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	derived := route.Derived
	if derived.InboundSlackDays != -3 {
		t.Fatalf("inbound slack = %d, want -3", derived.InboundSlackDays)
	}
	if len(derived.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", derived.Warnings)
	}
	// The locked flight date always wins for the inbound gateway departure.
	if !derived.DepartureDates["Casablanca"].Equal(start.AddDate(0, 0, 2)) {
		t.Fatalf("Casablanca departure = %v, want locked inbound date", derived.DepartureDates["Casablanca"])
	}
}

func TestBuildGroundRouteSameGatewayNoBaseCities(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	inbound := start.AddDate(0, 0, 4)
	req := GroundRouteRequest{
		Outbound:        domain.FlightAnchor{FromCity: "Bangalore", ToCity: "Lisbon", Date: start},
		Inbound:         domain.FlightAnchor{FromCity: "Lisbon", ToCity: "Bangalore", Date: inbound},
		Stops:           []domain.DraftStop{{City: "Lisbon", DesiredNights: 3}},
		DraftStayCities: []string{"Lisbon"},
	}

	route, err := BuildGroundRoute(req, geo.NewIndex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Fly in and out of the same city with nowhere else to go: there is
	// no ground movement, so no Lisbon to Lisbon leg.
	if len(route.GroundRoute) != 0 {
		t.Fatalf("expected no ground legs, got %v", route.GroundRoute)
	}

	derived := route.Derived
	if derived.TotalTripDays != 4 {
		t.Fatalf("total trip days = %d, want 4", derived.TotalTripDays)
	}
	if !derived.ArrivalDates["Lisbon"].Equal(start) {
		t.Fatalf("Lisbon arrival = %v, want trip start", derived.ArrivalDates["Lisbon"])
	}
	if !derived.DepartureDates["Lisbon"].Equal(inbound) {
		t.Fatalf("Lisbon departure = %v, want inbound flight date", derived.DepartureDates["Lisbon"])
	}
}

func TestBuildGroundRouteSameGatewayBothWays(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	inbound := start.AddDate(0, 0, 4)
	req := GroundRouteRequest{
		Outbound:        domain.FlightAnchor{FromCity: "Bangalore", ToCity: "Lisbon", Date: start},
		Inbound:         domain.FlightAnchor{FromCity: "Lisbon", ToCity: "Bangalore", Date: inbound},
		Stops:           []domain.DraftStop{{City: "Porto", DesiredNights: 3}},
		DraftStayCities: []string{"Lisbon", "Porto"},
	}

	route, err := BuildGroundRoute(req, geo.NewIndex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	derived := route.Derived
	if !derived.ArrivalDates["Lisbon"].Equal(start) {
		t.Fatalf("Lisbon arrival = %v, want trip start", derived.ArrivalDates["Lisbon"])
	}
	// Same city on both ends: departure comes from the locked inbound
	// flight, never from nights arithmetic.
	if !derived.DepartureDates["Lisbon"].Equal(inbound) {
		t.Fatalf("Lisbon departure = %v, want inbound flight date", derived.DepartureDates["Lisbon"])
	}
}

package dto

import "trip-route-service/internal/domain"

type FlightAnchorRequest struct {
	FromCity string `json:"from_city"`
	ToCity   string `json:"to_city"`
	Date     string `json:"date"`
}

type LockedAnchorsRequest struct {
	OutboundFlight FlightAnchorRequest `json:"outbound_flight"`
	InboundFlight  FlightAnchorRequest `json:"inbound_flight"`
}

type RoutePreferencesRequest struct {
	AvoidBacktracking bool     `json:"avoid_backtracking,omitempty"`
	PreferredModes    []string `json:"preferred_modes,omitempty"`
}

type GroundRouteRequest struct {
	TripID              string                  `json:"trip_id"`
	LockedFlightAnchors LockedAnchorsRequest    `json:"locked_flight_anchors"`
	DraftStops          []DraftStopRequest      `json:"draft_stops"`
	DraftStayCities     []string                `json:"draft_stay_cities"`
	Preferences         RoutePreferencesRequest `json:"preferences"`
}

type GroundRouteResponse struct {
	TripID          string                  `json:"trip_id"`
	StructuralRoute *domain.StructuralRoute `json:"structural_route"`
}

type RouteStepsRequest struct {
	StructuralRoute *domain.StructuralRoute `json:"structural_route"`
}

type RouteStepsResponse struct {
	Steps []domain.RouteStep `json:"steps"`
}

type EvaluateRouteRequest struct {
	TripID         string              `json:"trip_id"`
	OutboundFlight FlightAnchorRequest `json:"outbound_flight"`
	InboundFlight  FlightAnchorRequest `json:"inbound_flight"`
	Passengers     PassengersRequest   `json:"passengers"`
	CabinClass     string              `json:"cabin_class,omitempty"`
}

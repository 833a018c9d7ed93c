package dto

import "trip-route-service/internal/domain"

type DraftStopRequest struct {
	City          string `json:"city"`
	Country       string `json:"country,omitempty"`
	DesiredNights int    `json:"desired_nights,omitempty"`
}

type DateWindowRequest struct {
	EarliestStart string `json:"earliest_start"`
	LatestEnd     string `json:"latest_end"`
}

type PassengersRequest struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

type BudgetRangeRequest struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

type GatewayPreferencesRequest struct {
	BudgetRange      *BudgetRangeRequest `json:"budget_range,omitempty"`
	MaxStops         *int                `json:"max_stops,omitempty"`
	CabinClass       string              `json:"cabin_class,omitempty"`
	AllowedCountries []string            `json:"allowed_countries,omitempty"`
	ExcludedAirlines []string            `json:"excluded_airlines,omitempty"`
}

type GatewayRequest struct {
	TripID      string                    `json:"trip_id"`
	OriginCity  string                    `json:"origin_city"`
	DraftStops  []DraftStopRequest        `json:"draft_stops"`
	DateWindow  DateWindowRequest         `json:"date_window"`
	Passengers  PassengersRequest         `json:"passengers"`
	Preferences GatewayPreferencesRequest `json:"preferences"`
}

type GatewayResponse struct {
	TripID         string                 `json:"trip_id"`
	GatewayOptions []domain.GatewayOption `json:"gateway_options"`
}

package api

import (
	"net/http"

	"trip-route-service/internal/api/handlers"
	"trip-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	airports ports.AirportRepository,
	coords ports.CoordinateSource,
	provider ports.FlightProvider,
) http.Handler {
	mux := http.NewServeMux()

	gatewayHandler := &handlers.GatewayHandler{
		Airports: airports,
		Coords:   coords,
		Provider: provider,
	}
	routeHandler := &handlers.RouteHandler{
		Airports: airports,
		Coords:   coords,
		Provider: provider,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/gateways", gatewayHandler.Plan)
	mux.HandleFunc("/routes", routeHandler.Build)
	mux.HandleFunc("/routes/steps", routeHandler.Steps)
	mux.HandleFunc("/routes/evaluate", routeHandler.Evaluate)

	return loggingMiddleware(mux)
}

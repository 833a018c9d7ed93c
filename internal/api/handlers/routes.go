package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"
)

type RouteHandler struct {
	Airports ports.AirportRepository
	Coords   ports.CoordinateSource
	Provider ports.FlightProvider
}

// Build orders the draft stops into a linear ground route between the
// two locked flight anchors and derives the calendar schedule.
func (h *RouteHandler) Build(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.GroundRouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	outbound, err := parseAnchor(req.LockedFlightAnchors.OutboundFlight)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "locked_flight_anchors.outbound_flight: "+err.Error())
		return
	}
	inbound, err := parseAnchor(req.LockedFlightAnchors.InboundFlight)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "locked_flight_anchors.inbound_flight: "+err.Error())
		return
	}
	if inbound.Date.Before(outbound.Date) {
		writeError(w, r, http.StatusBadRequest, "inbound flight date must not precede outbound flight date")
		return
	}

	// The anchors define the endpoints; a gateway listed as a draft stop
	// is a contradictory request, not one to silently repair.
	for _, s := range req.DraftStops {
		city := strings.TrimSpace(s.City)
		if city == outbound.ToCity || city == inbound.FromCity {
			writeError(w, r, http.StatusBadRequest, "draft_stops must not contain a gateway city: "+city)
			return
		}
	}

	stops := make([]domain.DraftStop, 0, len(req.DraftStops))
	for _, s := range req.DraftStops {
		stops = append(stops, domain.DraftStop{
			City:          strings.TrimSpace(s.City),
			Country:       strings.TrimSpace(s.Country),
			DesiredNights: s.DesiredNights,
		})
	}

	mode := ""
	if len(req.Preferences.PreferredModes) > 0 {
		mode = req.Preferences.PreferredModes[0]
	}

	route, err := services.BuildGroundRoute(services.GroundRouteRequest{
		Outbound:          outbound,
		Inbound:           inbound,
		Stops:             stops,
		DraftStayCities:   req.DraftStayCities,
		AvoidBacktracking: req.Preferences.AvoidBacktracking,
		Mode:              mode,
	}, h.Coords)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GroundRouteResponse{
		TripID:          strings.TrimSpace(req.TripID),
		StructuralRoute: route,
	})
}

// Steps re-reads a finished structural route as its ordered step
// sequence for itinerary rendering.
func (h *RouteHandler) Steps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteStepsRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.StructuralRoute == nil || req.StructuralRoute.Derived == nil {
		writeError(w, r, http.StatusBadRequest, "structural_route with a derived schedule is required")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RouteStepsResponse{
		Steps: services.ReadRoute(req.StructuralRoute),
	})
}

// Evaluate aggregates factual price and duration ranges over the two
// flight anchors of a route.
func (h *RouteHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.EvaluateRouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	outbound, err := parseAnchor(req.OutboundFlight)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "outbound_flight: "+err.Error())
		return
	}
	inbound, err := parseAnchor(req.InboundFlight)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "inbound_flight: "+err.Error())
		return
	}

	adults := req.Passengers.Adults
	if adults == 0 {
		adults = 1
	}
	if adults < 1 || req.Passengers.Children < 0 {
		writeError(w, r, http.StatusBadRequest, "passengers.adults must be at least 1 and children non-negative")
		return
	}

	eval, err := services.EvaluateRoute(
		r.Context(),
		outbound, inbound,
		domain.Passengers{Adults: adults, Children: req.Passengers.Children},
		req.CabinClass,
		h.Airports,
		h.Provider,
	)
	if err != nil {
		log.Printf("evaluate route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, eval)
}

func parseAnchor(req dto.FlightAnchorRequest) (domain.FlightAnchor, error) {
	from := strings.TrimSpace(req.FromCity)
	to := strings.TrimSpace(req.ToCity)
	if from == "" || to == "" {
		return domain.FlightAnchor{}, fmt.Errorf("from_city and to_city are required")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return domain.FlightAnchor{}, fmt.Errorf("date must be YYYY-MM-DD")
	}
	return domain.FlightAnchor{FromCity: from, ToCity: to, Date: date}, nil
}

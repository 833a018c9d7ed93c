package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"
)

type GatewayHandler struct {
	Airports ports.AirportRepository
	Coords   ports.CoordinateSource
	Provider ports.FlightProvider
}

// Plan resolves candidate gateway pairs for a draft trip and prices each
// with real flight offers in both directions.
func (h *GatewayHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.GatewayRequest

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

	origin := strings.TrimSpace(req.OriginCity)
	if origin == "" {
		writeError(w, r, http.StatusBadRequest, "origin_city is required")
		return
	}
	if len(req.DraftStops) == 0 {
		writeError(w, r, http.StatusBadRequest, "draft_stops must contain at least one city")
		return
	}

	earliest, err := parseDate(req.DateWindow.EarliestStart)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date_window.earliest_start must be YYYY-MM-DD")
		return
	}
	latest, err := parseDate(req.DateWindow.LatestEnd)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date_window.latest_end must be YYYY-MM-DD")
		return
	}
	if latest.Before(earliest) {
		writeError(w, r, http.StatusBadRequest, "date_window.latest_end must not precede earliest_start")
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

	stops := make([]domain.DraftStop, 0, len(req.DraftStops))
	for _, s := range req.DraftStops {
		stops = append(stops, domain.DraftStop{
			City:          strings.TrimSpace(s.City),
			Country:       strings.TrimSpace(s.Country),
			DesiredNights: s.DesiredNights,
		})
	}

	svcReq := services.PlanGatewaysRequest{
		OriginCity:       origin,
		Stops:            stops,
		EarliestStart:    earliest,
		LatestEnd:        latest,
		Passengers:       domain.Passengers{Adults: adults, Children: req.Passengers.Children},
		CabinClass:       req.Preferences.CabinClass,
		MaxStops:         req.Preferences.MaxStops,
		AllowedCountries: req.Preferences.AllowedCountries,
		ExcludedAirlines: req.Preferences.ExcludedAirlines,
	}
	if br := req.Preferences.BudgetRange; br != nil {
		if br.Max < br.Min {
			writeError(w, r, http.StatusBadRequest, "preferences.budget_range.max must not be below min")
			return
		}
		svcReq.BudgetMin = br.Min
		svcReq.BudgetMax = br.Max
	}

	options, err := services.PlanGateways(r.Context(), svcReq, h.Airports, h.Coords, h.Provider)
	if err != nil {
		log.Printf("plan gateways failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	tripID := strings.TrimSpace(req.TripID)
	if tripID == "" {
		tripID = uuid.NewString()
	}

	writeJSON(w, r, http.StatusOK, dto.GatewayResponse{
		TripID:         tripID,
		GatewayOptions: options,
	})
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

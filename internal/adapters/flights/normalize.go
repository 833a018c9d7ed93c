package flights

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"trip-route-service/internal/domain"
)

// Raw offer shape shared by every known envelope variant.
type rawOffer struct {
	ID          string `json:"id"`
	Itineraries []struct {
		Duration string `json:"duration"`
		Segments []struct {
			Departure struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"departure"`
			Arrival struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"arrival"`
			CarrierCode string `json:"carrierCode"`
			Duration    string `json:"duration"`
		} `json:"segments"`
	} `json:"itineraries"`
	Price struct {
		GrandTotal string `json:"grandTotal"`
		Total      string `json:"total"`
		Currency   string `json:"currency"`
	} `json:"price"`
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
}

// extractOffers normalizes the heterogeneous response envelopes into one
// flat offer list. The shapes are tried in a fixed priority order:
// data as an array, data.flightOffers, then a top-level flightOffers
// field; anything else means no offers.
func extractOffers(envelope json.RawMessage) ([]rawOffer, error) {
	var primary struct {
		Data []rawOffer `json:"data"`
	}
	if err := json.Unmarshal(envelope, &primary); err == nil && primary.Data != nil {
		return primary.Data, nil
	}

	var nested struct {
		Data struct {
			FlightOffers []rawOffer `json:"flightOffers"`
		} `json:"data"`
	}
	if err := json.Unmarshal(envelope, &nested); err == nil && nested.Data.FlightOffers != nil {
		return nested.Data.FlightOffers, nil
	}

	var flat struct {
		FlightOffers []rawOffer `json:"flightOffers"`
	}
	if err := json.Unmarshal(envelope, &flat); err == nil && flat.FlightOffers != nil {
		return flat.FlightOffers, nil
	}

	// Valid JSON with none of the known shapes: treat as zero offers.
	return []rawOffer{}, nil
}

// normalizeOffers converts raw offers to FlightOptions, skipping offers
// that cannot be normalized and deduplicating by airline plus times plus
// airports. Output order is deterministic.
func normalizeOffers(offers []rawOffer) []domain.FlightOption {
	out := make([]domain.FlightOption, 0, len(offers))
	seen := make(map[string]struct{}, len(offers))

	for _, raw := range offers {
		option, err := normalizeOffer(raw)
		if err != nil {
			continue
		}

		key := dedupKey(option)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, option)
	}

	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].DepartureTime.Equal(out[b].DepartureTime) {
			return out[a].DepartureTime.Before(out[b].DepartureTime)
		}
		return out[a].ID < out[b].ID
	})

	return out
}

func normalizeOffer(raw rawOffer) (domain.FlightOption, error) {
	if len(raw.Itineraries) == 0 || len(raw.Itineraries[0].Segments) == 0 {
		return domain.FlightOption{}, fmt.Errorf("offer %q has no segments", raw.ID)
	}
	itinerary := raw.Itineraries[0]

	price, err := parsePrice(raw.Price.GrandTotal, raw.Price.Total)
	if err != nil {
		return domain.FlightOption{}, fmt.Errorf("offer %q: %w", raw.ID, err)
	}

	durationMinutes, err := ParseISODuration(itinerary.Duration)
	if err != nil {
		return domain.FlightOption{}, fmt.Errorf("offer %q: %w", raw.ID, err)
	}

	airline := ""
	if len(raw.ValidatingAirlineCodes) > 0 {
		airline = raw.ValidatingAirlineCodes[0]
	}
	if airline == "" {
		airline = itinerary.Segments[0].CarrierCode
	}

	legs := make([]domain.LegItem, 0, 2*len(itinerary.Segments)-1)
	var prevArrival time.Time
	for i, seg := range itinerary.Segments {
		dep, err := parseSegmentTime(seg.Departure.At)
		if err != nil {
			return domain.FlightOption{}, fmt.Errorf("offer %q segment %d: %w", raw.ID, i, err)
		}
		arr, err := parseSegmentTime(seg.Arrival.At)
		if err != nil {
			return domain.FlightOption{}, fmt.Errorf("offer %q segment %d: %w", raw.ID, i, err)
		}

		if i > 0 {
			legs = append(legs, domain.LegItem{Layover: &domain.FlightLayover{
				Airport:        seg.Departure.IataCode,
				LayoverMinutes: int(dep.Sub(prevArrival).Minutes()),
			}})
		}

		segMinutes := 0
		if seg.Duration != "" {
			if m, err := ParseISODuration(seg.Duration); err == nil {
				segMinutes = m
			}
		}
		if segMinutes == 0 {
			segMinutes = int(arr.Sub(dep).Minutes())
		}

		legs = append(legs, domain.LegItem{Flight: &domain.FlightLeg{
			FromAirport:     seg.Departure.IataCode,
			ToAirport:       seg.Arrival.IataCode,
			DepartureTime:   dep,
			ArrivalTime:     arr,
			DurationMinutes: segMinutes,
		}})
		prevArrival = arr
	}

	first := itinerary.Segments[0]
	last := itinerary.Segments[len(itinerary.Segments)-1]
	departure, _ := parseSegmentTime(first.Departure.At)
	arrival, _ := parseSegmentTime(last.Arrival.At)

	id := raw.ID
	if id == "" {
		id = uuid.NewString()
	}

	currency := raw.Price.Currency
	if currency == "" {
		currency = "USD"
	}

	return domain.FlightOption{
		ID:              id,
		Airline:         airline,
		Price:           price,
		Currency:        currency,
		Duration:        FormatDuration(durationMinutes),
		DurationMinutes: durationMinutes,
		Stops:           len(itinerary.Segments) - 1,
		DepartureTime:   departure,
		ArrivalTime:     arrival,
		Legs:            legs,
	}, nil
}

func parsePrice(grandTotal, total string) (float64, error) {
	s := grandTotal
	if s == "" {
		s = total
	}
	if s == "" {
		return 0, fmt.Errorf("offer has no price")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	return v, nil
}

// parseSegmentTime accepts RFC 3339 timestamps with or without a zone
// designator, which the external API mixes freely.
func parseSegmentTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

func dedupKey(f domain.FlightOption) string {
	parts := []string{
		f.Airline,
		f.DepartureTime.Format(time.RFC3339),
		f.ArrivalTime.Format(time.RFC3339),
	}
	for _, item := range f.Legs {
		if item.Flight != nil {
			parts = append(parts, item.Flight.FromAirport, item.Flight.ToAirport)
		}
	}
	return strings.Join(parts, "|")
}

package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

const offersPerSearch = 50

// SearchFlights runs one flight-offers search and returns normalized,
// deduplicated options. Identical concurrent searches are collapsed into
// a single upstream call, and results are served from the offer cache
// when one is configured.
func (p *AmadeusProvider) SearchFlights(ctx context.Context, q ports.FlightQuery) ([]domain.FlightOption, error) {
	if q.OriginCode == "" || q.DestinationCode == "" {
		return nil, fmt.Errorf("search flights: origin and destination codes must be non-empty")
	}

	key := cacheKey(q)

	if p.offers != nil {
		cached, ok, err := p.offers.Get(ctx, key)
		if err != nil {
			log.Printf("offer cache read failed: key=%s err=%v", key, err)
		} else if ok {
			return cached, nil
		}
	}

	v, err, _ := p.group.Do(key, func() (any, error) {
		return p.fetchOffers(ctx, q)
	})
	if err != nil {
		return nil, fmt.Errorf("search flights %s -> %s: %w", q.OriginCode, q.DestinationCode, err)
	}
	options := v.([]domain.FlightOption)

	if p.offers != nil {
		if err := p.offers.Put(ctx, key, options); err != nil {
			log.Printf("offer cache write failed: key=%s err=%v", key, err)
		}
	}

	return options, nil
}

func cacheKey(q ports.FlightQuery) string {
	return fmt.Sprintf(
		"offers:%s:%s:%s:%d:%d:%s",
		q.OriginCode, q.DestinationCode, q.Date.Format("2006-01-02"),
		q.Adults, q.Children, q.CabinClass,
	)
}

func (p *AmadeusProvider) fetchOffers(ctx context.Context, q ports.FlightQuery) ([]domain.FlightOption, error) {
	endpoint := p.baseURL + "/v2/shopping/flight-offers"

	adults := q.Adults
	if adults < 1 {
		adults = 1
	}

	buildReq := func() (*http.Request, error) {
		req, err := p.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		qs := req.URL.Query()
		qs.Set("originLocationCode", q.OriginCode)
		qs.Set("destinationLocationCode", q.DestinationCode)
		qs.Set("departureDate", q.Date.Format("2006-01-02"))
		qs.Set("adults", strconv.Itoa(adults))
		if q.Children > 0 {
			qs.Set("children", strconv.Itoa(q.Children))
		}
		if q.CabinClass != "" {
			qs.Set("travelClass", normalizeCabinClass(q.CabinClass))
		}
		qs.Set("max", strconv.Itoa(offersPerSearch))
		qs.Set("currencyCode", "USD")
		req.URL.RawQuery = qs.Encode()
		return req, nil
	}

	resp, err := p.doWithRetry(ctx, buildReq)
	if err != nil {
		return nil, fmt.Errorf("flight offers request: %w", err)
	}
	defer resp.Body.Close()

	var envelope json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode flight offers response: %w", err)
	}

	offers, err := extractOffers(envelope)
	if err != nil {
		return nil, fmt.Errorf("normalize flight offers: %w", err)
	}

	return normalizeOffers(offers), nil
}

func normalizeCabinClass(class string) string {
	switch class {
	case "economy", "ECONOMY", "":
		return "ECONOMY"
	case "premium_economy", "PREMIUM_ECONOMY":
		return "PREMIUM_ECONOMY"
	case "business", "BUSINESS":
		return "BUSINESS"
	case "first", "FIRST":
		return "FIRST"
	default:
		return "ECONOMY"
	}
}

var _ ports.FlightProvider = (*AmadeusProvider)(nil)

package flights

import (
	"context"
	"fmt"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// MockProvider serves canned flight options keyed by search route and
// date, for tests and offline runs.
type MockProvider struct {
	m    map[string][]domain.FlightOption
	errs map[string]error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		m:    make(map[string][]domain.FlightOption),
		errs: make(map[string]error),
	}
}

func (p *MockProvider) Stub(q ports.FlightQuery, options []domain.FlightOption) {
	p.m[mockKey(q)] = options
}

func (p *MockProvider) StubError(q ports.FlightQuery, err error) {
	p.errs[mockKey(q)] = err
}

func (p *MockProvider) SearchFlights(ctx context.Context, q ports.FlightQuery) ([]domain.FlightOption, error) {
	key := mockKey(q)
	if err, ok := p.errs[key]; ok {
		return nil, err
	}
	return p.m[key], nil
}

func mockKey(q ports.FlightQuery) string {
	return fmt.Sprintf("%s|%s|%s", q.OriginCode, q.DestinationCode, q.Date.Format("2006-01-02"))
}

var _ ports.FlightProvider = (*MockProvider)(nil)

package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trip-route-service/internal/ports"
)

const defaultBaseURL = "https://test.api.amadeus.com"

// AmadeusProvider implements FlightProvider against the Amadeus
// flight-offers API.
//
// It coordinates:
//   - OAuth2 client-credentials token refresh
//   - Response envelope normalization and offer deduplication
//   - External API calls with retry/backoff
//   - Optional offer caching plus in-flight request collapsing
//
// The provider is safe for concurrent use.
type AmadeusProvider struct {
	session      *http.Client
	baseURL      string
	clientID     string
	clientSecret string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time

	offers ports.OfferCache
	group  singleflight.Group
}

func NewAmadeusProvider(clientID, clientSecret string, offers ports.OfferCache) (*AmadeusProvider, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("amadeus credentials are empty")
	}

	return &AmadeusProvider{
		session:      &http.Client{Timeout: 15 * time.Second},
		baseURL:      defaultBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		offers:       offers,
	}, nil
}

// token returns a valid access token, refreshing it when expired.
func (p *AmadeusProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	token, expiry := p.accessToken, p.tokenExpiry
	p.mu.Unlock()

	if token != "" && time.Now().Before(expiry) {
		return token, nil
	}
	return p.refreshToken(ctx)
}

func (p *AmadeusProvider) refreshToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		p.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.session.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &httpStatusError{Code: resp.StatusCode, Body: truncateBody(body)}
	}

	var decoded struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if decoded.AccessToken == "" {
		return "", errors.New("token response contained no access token")
	}

	p.mu.Lock()
	p.accessToken = decoded.AccessToken
	// Refresh slightly early to avoid racing the server-side expiry.
	p.tokenExpiry = time.Now().Add(time.Duration(decoded.ExpiresIn-30) * time.Second)
	p.mu.Unlock()

	return decoded.AccessToken, nil
}

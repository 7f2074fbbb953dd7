// This file contains a Massive-backed Provider implementation that
// retrieves option expirations, chain snapshots, and spot prices via
// Massive HTTP APIs.
//
// Design notes:
//   - Uses raw HTTP calls instead of the official Massive SDK
//   - Supports pagination, a client-side rate limiter, and 429 retries
//   - Logging is intentionally verbose at Debug/Trace levels

package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/contactkeval/option-leverage/internal/logger"
)

// requestsPerSecond is the client-side throttle applied before every
// API call; the server-side per-minute limit is still handled by the
// 429 retry loop.
const requestsPerSecond = 5

// massiveDataProvider implements the Provider interface using Massive APIs.
type massiveDataProvider struct {
	// APIKey used for authenticating requests with Massive.
	APIKey string

	// Client is the HTTP client used to make API requests.
	Client *http.Client

	// BaseURL is the root endpoint for Massive APIs
	// (e.g., https://api.massive.com).
	BaseURL string

	limiter *rate.Limiter

	// secondary is an optional fallback provider.
	secondary Provider
}

// massiveContract represents a single option contract
// returned by Massive's contracts reference endpoint.
type massiveContract struct {
	ContractType     string  `json:"contract_type"`
	ExpiryDate       string  `json:"expiration_date"`
	StrikePrice      float64 `json:"strike_price"`
	Ticker           string  `json:"ticker"`
	UnderlyingTicker string  `json:"underlying_ticker"`
}

// massiveContractsResp models the paginated response
// returned by Massive's option contracts API.
type massiveContractsResp struct {
	Results   []massiveContract `json:"results"`
	Status    string            `json:"status"`
	RequestID string            `json:"request_id"`
	NextURL   string            `json:"next_url"`
}

// massiveChainResp models the paginated option chain snapshot response.
type massiveChainResp struct {
	Results []struct {
		Details struct {
			ContractType string  `json:"contract_type"`
			ExpiryDate   string  `json:"expiration_date"`
			StrikePrice  float64 `json:"strike_price"`
		} `json:"details"`
		LastQuote struct {
			Bid float64 `json:"bid"`
			Ask float64 `json:"ask"`
		} `json:"last_quote"`
		LastTrade struct {
			Price float64 `json:"price"`
		} `json:"last_trade"`
		Day struct {
			Volume float64 `json:"volume"`
		} `json:"day"`
	} `json:"results"`
	Status  string `json:"status"`
	NextURL string `json:"next_url"`
}

// NewMassiveDataProvider constructs a Massive-backed data provider.
//
// It initializes an HTTP client with sensible defaults for timeouts,
// connection pooling, HTTP/2 support, and gzip decompression.
func NewMassiveDataProvider(apiKey string) *massiveDataProvider {
	logger.Infof("initializing Massive data provider")

	return &massiveDataProvider{
		APIKey: apiKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				DisableCompression:    false, // must be false to enable gzip auto-decompression
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		BaseURL: "https://api.massive.com",
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// Secondary returns the configured secondary Provider, if any.
func (massiveDataProv *massiveDataProvider) Secondary() Provider {
	return massiveDataProv.secondary
}

// GetExpirations returns the sorted unique call option expiration dates
// for an underlying, collected from the paginated contracts reference
// endpoint.
//
// Parameters:
//   - ctx: request context
//   - underlying: underlying ticker symbol (e.g., "AAPL")
//
// Returns:
//   - []time.Time: sorted unique expiration dates
//   - error: ErrNoExpirations when the symbol has no listed contracts,
//     or a wrapped transport/decoding error
func (massiveDataProv *massiveDataProvider) GetExpirations(
	ctx context.Context,
	underlying string,
) ([]time.Time, error) {

	logger.Debugf("fetching expirations for %s", underlying)

	reqURL, err := massiveDataProv.contractsURL(underlying)
	if err != nil {
		return nil, err
	}

	expiryMap := map[string]time.Time{}

	// Handle pagination
	for reqURL != "" {
		logger.Tracef("contracts request URL: %s", reqURL)

		var massiveResp massiveContractsResp
		if err := massiveDataProv.getJSON(ctx, reqURL, &massiveResp); err != nil {
			return nil, fmt.Errorf("massive contracts: %w", err)
		}

		for _, result := range massiveResp.Results {
			t, err := time.Parse("2006-01-02", result.ExpiryDate)
			if err != nil {
				continue // skip malformed expiry dates
			}
			expiryMap[result.ExpiryDate] = t
		}

		reqURL = massiveResp.NextURL
	}

	if len(expiryMap) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoExpirations, underlying)
	}

	expiries := sortedUniqueDates(expiryMap)
	logger.Infof("resolved %d unique expiries for %s", len(expiries), underlying)
	return expiries, nil
}

// GetChain retrieves the call option chain snapshot for one expiration.
//
// Rows are returned ordered by strike ascending with unique strikes.
// Strikes with no quoted ask are kept with Ask == 0 so the caller can
// decide how to treat them.
func (massiveDataProv *massiveDataProvider) GetChain(
	ctx context.Context,
	underlying string,
	expiry time.Time,
) ([]Quote, error) {

	logger.Debugf(
		"fetching chain: %s expiry=%s",
		underlying,
		expiry.Format("2006-01-02"),
	)

	u, err := url.Parse(massiveDataProv.BaseURL + "/v3/snapshot/options/" + underlying)
	if err != nil {
		return nil, err
	}

	query := u.Query()
	query.Set("expiration_date", expiry.Format("2006-01-02"))
	query.Set("contract_type", "call")
	query.Set("limit", "250")
	query.Set("apiKey", massiveDataProv.APIKey)
	u.RawQuery = query.Encode()
	reqURL := u.String()

	var quotes []Quote

	for reqURL != "" {
		logger.Tracef("chain request URL: %s", reqURL)

		var chainResp massiveChainResp
		if err := massiveDataProv.getJSON(ctx, reqURL, &chainResp); err != nil {
			return nil, fmt.Errorf("massive chain snapshot: %w", err)
		}

		for _, r := range chainResp.Results {
			if r.Details.ContractType != "call" {
				continue
			}
			quotes = append(quotes, Quote{
				Strike:    r.Details.StrikePrice,
				Bid:       r.LastQuote.Bid,
				Ask:       r.LastQuote.Ask,
				LastPrice: r.LastTrade.Price,
				Volume:    r.Day.Volume,
			})
		}

		reqURL = chainResp.NextURL
	}

	if len(quotes) == 0 {
		return nil, fmt.Errorf(
			"%w: %s %s",
			ErrNoChain,
			underlying,
			expiry.Format("2006-01-02"),
		)
	}

	quotes = normalizeChain(quotes)
	logger.Tracef("received %d chain rows", len(quotes))
	return quotes, nil
}

// GetSpotPrice returns the most recent close for the underlying using
// the previous-day aggregate endpoint.
func (massiveDataProv *massiveDataProvider) GetSpotPrice(
	ctx context.Context,
	underlying string,
) (float64, error) {

	reqURL := fmt.Sprintf(
		"%s/v2/aggs/ticker/%s/prev?adjusted=true&apiKey=%s",
		massiveDataProv.BaseURL,
		underlying,
		massiveDataProv.APIKey,
	)

	var body struct {
		Ticker  string `json:"ticker"`
		Results []struct {
			Close     float64 `json:"c"`
			Timestamp int64   `json:"t"` // epoch millis
		} `json:"results"`
		Status string `json:"status"`
	}

	if err := massiveDataProv.getJSON(ctx, reqURL, &body); err != nil {
		return 0, fmt.Errorf("massive prev close: %w", err)
	}

	if len(body.Results) == 0 || body.Results[0].Close <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoSpotPrice, underlying)
	}

	logger.Debugf("spot %s = %.2f", underlying, body.Results[0].Close)
	return body.Results[0].Close, nil
}

// contractsURL builds the first page URL for the call contracts listing.
func (massiveDataProv *massiveDataProvider) contractsURL(underlying string) (string, error) {
	u, err := url.Parse(massiveDataProv.BaseURL + "/v3/reference/options/contracts")
	if err != nil {
		return "", err
	}

	query := u.Query()
	query.Set("underlying_ticker", underlying)
	query.Set("contract_type", "call")
	query.Set("limit", "1000")
	query.Set("apiKey", massiveDataProv.APIKey)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// getJSON performs a GET request and decodes the JSON response body.
func (massiveDataProv *massiveDataProvider) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+massiveDataProv.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "massive-client/1.0")

	resp, err := massiveDataProv.processGetRequest(req)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return err
	}

	if len(body) == 0 {
		return fmt.Errorf("empty response body")
	}

	if resp.StatusCode != http.StatusOK {
		var dbg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &dbg)

		logger.Errorf(
			"massive API error status=%d message=%s",
			resp.StatusCode,
			dbg.Message,
		)
		return fmt.Errorf(
			"massive returned status %d: %s",
			resp.StatusCode,
			dbg.Message,
		)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

// processGetRequest executes an HTTP GET request with rate-limit handling.
//
// Behavior:
//   - Waits on the client-side limiter before each attempt
//   - Retries on HTTP 429, sleeping until the next minute boundary
//   - Returns immediately on success (<400)
//   - Returns an error for other status codes
func (massiveDataProv *massiveDataProvider) processGetRequest(
	req *http.Request,
) (*http.Response, error) {

	for {
		if err := massiveDataProv.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}

		resp, err := massiveDataProv.Client.Do(req)
		if err != nil {
			return nil, err
		}

		// Success
		if resp.StatusCode < 400 {
			return resp, nil
		}

		// Handle per-minute rate limit (commonly 429)
		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()

			// Sleep until the next minute boundary
			now := time.Now()
			sleepDuration := time.Until(
				now.Truncate(time.Minute).Add(time.Minute),
			)

			logger.Infof("rate limit hit, sleeping for %s", sleepDuration)
			time.Sleep(sleepDuration)
			continue
		}

		return resp, fmt.Errorf(
			"unexpected status code: %d",
			resp.StatusCode,
		)
	}
}

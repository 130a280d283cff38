package oddsapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/matchpulse/matchpulse-api/internal/platform/logging"
	"github.com/matchpulse/matchpulse-api/internal/platform/resilience"
)

const (
	defaultBaseURL    = "https://api.the-odds-api.com"
	defaultMarkets    = "h2h,totals,spreads"
	defaultRegions    = "eu"
	defaultOddsFormat = "decimal"
	defaultAttempts   = 3
	maxResponseBytes  = 6 << 20
)

// ErrRateLimitExceeded means every attempt against the provider hit HTTP 429.
var ErrRateLimitExceeded = crerr.New("odds provider rate limit exceeded")

// ErrUpstreamRequest covers non-retryable provider failures: bad league code,
// auth rejection, malformed request, transport errors.
var ErrUpstreamRequest = crerr.New("odds provider request failed")

var apiKeyParamRegex = regexp.MustCompile(`apiKey=[^&\s"']+`)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxAttempts    int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches fixture odds from the provider, one league per call.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxAttempts    int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	backoff        func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultAttempts
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxAttempts:    maxAttempts,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * time.Second
		},
	}
}

// Ready reports whether the client holds the credentials it needs to call the
// provider at all.
func (c *Client) Ready() error {
	if c.apiKey == "" {
		return fmt.Errorf("odds provider api key is not configured")
	}
	return nil
}

// FetchLeagueOdds returns the provider's event array for one league code,
// along with the raw response body for archival.
func (c *Client) FetchLeagueOdds(ctx context.Context, leagueCode string) ([]Event, []byte, error) {
	leagueCode = strings.TrimSpace(leagueCode)
	if leagueCode == "" {
		return nil, nil, fmt.Errorf("league code is required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "odds provider circuit breaker rejected request",
				"league", leagueCode, "state", c.breaker.State())
			return nil, nil, fmt.Errorf("%w: provider is temporarily unavailable", ErrUpstreamRequest)
		}
	}

	values := url.Values{}
	values.Set("apiKey", c.apiKey)
	values.Set("regions", defaultRegions)
	values.Set("markets", defaultMarkets)
	values.Set("oddsFormat", defaultOddsFormat)
	fullURL := fmt.Sprintf("%s/v4/sports/%s/odds/?%s", c.baseURL, url.PathEscape(leagueCode), values.Encode())

	out, err, _ := c.flight.Do(leagueCode, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && !crerr.Is(reqErr, ErrUpstreamRequest) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var events []Event
	if err := sonic.Unmarshal(raw, &events); err != nil {
		return nil, nil, fmt.Errorf("decode provider payload league=%s: %w", leagueCode, err)
	}

	return events, raw, nil
}

// executeRequest retries rate-limited responses with exponential backoff
// (1s, 2s, ...), at most maxAttempts requests total. Every other failure is
// final on the first attempt.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: send request: %s", ErrUpstreamRequest, c.redact(err.Error()))
		}

		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("%w: read response body: %v", ErrUpstreamRequest, readErr)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return raw, nil
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: status=%d body=%s", ErrUpstreamRequest, resp.StatusCode, abbreviateBody(raw))
		}

		if attempt == c.maxAttempts-1 {
			break
		}

		delay := c.backoff(attempt)
		c.logger.WarnContext(ctx, "odds provider rate limited, backing off",
			"url", c.redact(fullURL), "attempt", attempt, "delay", delay.String())
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("%w: %d attempts exhausted", ErrRateLimitExceeded, c.maxAttempts)
}

func (c *Client) redact(value string) string {
	if c.apiKey != "" {
		value = strings.ReplaceAll(value, c.apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apiKey=REDACTED")
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

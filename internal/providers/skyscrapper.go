package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dharmasatrya/skysearch/internal/ratelimit"
)

var (
	ErrMissingAPIKey = errors.New("sky scrapper api key is not configured")
	ErrUpstream      = errors.New("flight data api error")
)

type SkyScrapperConfig struct {
	BaseURL     string
	APIKey      string
	APIHost     string
	Locale      string
	Currency    string
	Market      string
	CountryCode string
	Timeout     time.Duration
}

func DefaultSkyScrapperConfig() SkyScrapperConfig {
	return SkyScrapperConfig{
		BaseURL:     "https://sky-scrapper.p.rapidapi.com/",
		APIHost:     "sky-scrapper.p.rapidapi.com",
		Locale:      "en-US",
		Currency:    "USD",
		Market:      "en-US",
		CountryCode: "US",
		Timeout:     15 * time.Second,
	}
}

// SkyScrapper talks to the Sky Scrapper flight data API on RapidAPI.
type SkyScrapper struct {
	cfg        SkyScrapperConfig
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *ratelimit.ProviderLimiter
	logger     *slog.Logger
}

type SkyScrapperOption func(*SkyScrapper)

// WithAirportRateLimiter throttles airport lookups. Flight searches are
// throttled by the aggregator instead.
func WithAirportRateLimiter(l *ratelimit.ProviderLimiter) SkyScrapperOption {
	return func(p *SkyScrapper) {
		p.limiter = l
	}
}

func WithHTTPClient(c *http.Client) SkyScrapperOption {
	return func(p *SkyScrapper) {
		p.httpClient = c
	}
}

func NewSkyScrapper(cfg SkyScrapperConfig, logger *slog.Logger, opts ...SkyScrapperOption) (*SkyScrapper, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.APIHost == "" {
		cfg.APIHost = base.Host
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &SkyScrapper{
		cfg:     cfg,
		baseURL: base,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *SkyScrapper) Name() string {
	return "skyscrapper"
}

type apiEnvelope struct {
	Status  *apiStatus      `json:"status"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// apiStatus accepts both `true` and `"success"`; the API has used both.
type apiStatus bool

func (s *apiStatus) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = apiStatus(b)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch strings.ToLower(str) {
	case "true", "success", "ok":
		*s = true
	default:
		*s = false
	}
	return nil
}

func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// get performs a GET against the API and decodes the envelope's data field
// into out. A non-empty bucket waits on the rate limiter first.
func (p *SkyScrapper) get(ctx context.Context, bucket, path string, query url.Values, out any) error {
	if bucket != "" && p.limiter != nil && !p.limiter.Allow(bucket) {
		p.logger.Debug("rate limited, waiting for token", "bucket", bucket)
		if err := p.limiter.Wait(ctx, bucket); err != nil {
			return err
		}
	}

	u := p.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", p.cfg.APIKey)
	req.Header.Set("x-rapidapi-host", p.cfg.APIHost)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if env.Status != nil && !bool(*env.Status) {
		msg := messageText(env.Message)
		if msg == "" {
			msg = "request was not successful"
		}
		return fmt.Errorf("%w: %s", ErrUpstream, msg)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

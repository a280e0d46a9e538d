package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"assetoracle/internal/platform/config"
	"assetoracle/internal/platform/metrics"
	"assetoracle/internal/property"
)

// Client calls the external investment-scoring service with a hard timeout.
// Timeouts and transport errors are treated identically: the client switches
// to the local fallback policy immediately, with no retries, and never
// surfaces an error to the pipeline.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a scoring client. An empty URL disables the external call
// so every request scores via fallback.
func NewClient(cfg config.ScoringConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	c := &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// scoreRequest is the external service's request contract.
type scoreRequest struct {
	PropertyType string     `json:"property_type"`
	Location     string     `json:"location"`
	Valuation    float64    `json:"valuation"`
	AnnualYield  float64    `json:"annual_yield"`
	MarketData   marketData `json:"market_data"`
}

type marketData struct {
	AvgPricePerSqFt float64 `json:"avg_price_per_sqft"`
	Trend           string  `json:"trend"`
}

// scoreResponse is the external service's response contract.
type scoreResponse struct {
	InvestmentScore int      `json:"investment_score"`
	Risks           []string `json:"risks"`
	Strengths       []string `json:"strengths"`
	Opportunities   []string `json:"opportunities"`
	Summary         string   `json:"summary"`
}

// Score produces a scoring result for the snapshot. It returns the external
// result when the service answers in time, and the fallback result otherwise.
func (c *Client) Score(ctx context.Context, snapshot *property.Snapshot) Result {
	if c.url == "" {
		return c.fallback(ctx, snapshot, "scoring service not configured")
	}

	external, err := c.scoreExternal(ctx, snapshot)
	if err != nil {
		return c.fallback(ctx, snapshot, err.Error())
	}
	return external
}

func (c *Client) scoreExternal(ctx context.Context, snapshot *property.Snapshot) (Result, error) {
	reqBody := scoreRequest{
		PropertyType: "Real Estate",
		Location:     snapshot.Address.Location(),
		Valuation:    snapshot.EstimatedValue(),
		AnnualYield:  snapshot.AnnualYield(),
	}
	if snapshot.Valuation != nil {
		reqBody.MarketData = marketData{
			AvgPricePerSqFt: snapshot.Valuation.PricePerSqFt,
			Trend:           string(snapshot.Valuation.MarketTrend),
		}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("marshal scoring request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build scoring request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("scoring request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("scoring service returned status %d", resp.StatusCode)
	}

	var decoded scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{}, fmt.Errorf("decode scoring response: %w", err)
	}

	return Result{
		InvestmentScore: decoded.InvestmentScore,
		FraudLikelihood: FraudLikelihoodForFlags(len(decoded.Risks)),
		Recommendation:  RecommendationForScore(decoded.InvestmentScore),
		Confidence:      ExternalConfidence,
		Summary:         decoded.Summary,
		Source:          SourceExternal,
	}, nil
}

func (c *Client) fallback(ctx context.Context, snapshot *property.Snapshot, reason string) Result {
	if c.logger != nil {
		c.logger.WarnContext(ctx, "scoring service unavailable, using fallback",
			"reason", reason,
			"address", snapshot.Address.Full(),
		)
	}
	if c.metrics != nil {
		c.metrics.ScoringFallbacks.Inc()
	}
	return Fallback(snapshot)
}

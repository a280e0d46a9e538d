package property

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"assetoracle/internal/platform/config"
)

// HTTP-backed providers. Each posts the normalized address to its base URL
// and decodes the typed record. Any transport or protocol failure becomes a
// SourceError for that provider only.

type addressRequest struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip,omitempty"`
}

type httpSource struct {
	name    SourceName
	baseURL string
	client  *http.Client
}

func newHTTPSource(name SourceName, baseURL string, timeout time.Duration) httpSource {
	return httpSource{
		name:    name,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s httpSource) fetch(ctx context.Context, addr Address, out any) error {
	body, err := json.Marshal(addressRequest{
		Street: addr.Street,
		City:   addr.City,
		State:  addr.State,
		Zip:    addr.Zip,
	})
	if err != nil {
		return NewSourceError(s.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return NewSourceError(s.name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return NewSourceError(s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewSourceError(s.name, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewSourceError(s.name, err)
	}
	return nil
}

type HTTPRegistrySource struct{ httpSource }

func NewHTTPRegistrySource(baseURL string, timeout time.Duration) *HTTPRegistrySource {
	return &HTTPRegistrySource{newHTTPSource(SourceRegistry, baseURL, timeout)}
}

func (s *HTTPRegistrySource) FetchRegistry(ctx context.Context, addr Address) (*RegistryRecord, error) {
	var record RegistryRecord
	if err := s.fetch(ctx, addr, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

type HTTPValuationSource struct{ httpSource }

func NewHTTPValuationSource(baseURL string, timeout time.Duration) *HTTPValuationSource {
	return &HTTPValuationSource{newHTTPSource(SourceValuation, baseURL, timeout)}
}

func (s *HTTPValuationSource) FetchValuation(ctx context.Context, addr Address) (*ValuationRecord, error) {
	var record ValuationRecord
	if err := s.fetch(ctx, addr, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

type HTTPRiskSource struct{ httpSource }

func NewHTTPRiskSource(baseURL string, timeout time.Duration) *HTTPRiskSource {
	return &HTTPRiskSource{newHTTPSource(SourceRisk, baseURL, timeout)}
}

func (s *HTTPRiskSource) FetchRisk(ctx context.Context, addr Address) (*RiskRecord, error) {
	var record RiskRecord
	if err := s.fetch(ctx, addr, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// SourcesFromConfig builds the provider set, selecting the HTTP client when a
// URL is configured and the static fixture otherwise.
func SourcesFromConfig(cfg config.SourcesConfig) Sources {
	sources := StaticSources()
	if cfg.RegistryURL != "" {
		sources.Registry = NewHTTPRegistrySource(cfg.RegistryURL, cfg.Timeout)
	}
	if cfg.ValuationURL != "" {
		sources.Valuation = NewHTTPValuationSource(cfg.ValuationURL, cfg.Timeout)
	}
	if cfg.RiskURL != "" {
		sources.Risk = NewHTTPRiskSource(cfg.RiskURL, cfg.Timeout)
	}
	return sources
}

package property

import (
	"context"
	"errors"
	"fmt"
)

// SourceName identifies one of the independent data providers.
type SourceName string

const (
	SourceRegistry  SourceName = "registry"
	SourceValuation SourceName = "valuation"
	SourceRisk      SourceName = "risk"
)

// SourceError normalizes provider failures so the aggregator can record a
// degraded source without caring about transport details.
type SourceError struct {
	Source SourceName
	cause  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.cause)
}

func (e *SourceError) Unwrap() error {
	return e.cause
}

// NewSourceError wraps a provider failure.
func NewSourceError(source SourceName, cause error) *SourceError {
	return &SourceError{Source: source, cause: cause}
}

// IsSourceError reports whether err is a normalized source failure.
func IsSourceError(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}

// Typed fetcher interfaces, one per provider. Each is independent; a failure
// in one must not block the others.
type (
	RegistrySource interface {
		FetchRegistry(ctx context.Context, addr Address) (*RegistryRecord, error)
	}
	ValuationSource interface {
		FetchValuation(ctx context.Context, addr Address) (*ValuationRecord, error)
	}
	RiskSource interface {
		FetchRisk(ctx context.Context, addr Address) (*RiskRecord, error)
	}
)

// Sources bundles the three providers the aggregator fans out to.
type Sources struct {
	Registry  RegistrySource
	Valuation ValuationSource
	Risk      RiskSource
}

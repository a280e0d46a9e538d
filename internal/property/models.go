// Package property aggregates per-source property records into a single
// snapshot. Sources are independent: one failing provider degrades the
// snapshot instead of failing the run.
package property

import "time"

// MarketTrend is the valuation platform's direction indicator.
type MarketTrend string

const (
	TrendRising  MarketTrend = "RISING"
	TrendFlat    MarketTrend = "FLAT"
	TrendFalling MarketTrend = "FALLING"
)

// RiskLevel grades a single risk dimension.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// OwnershipEntry is one transfer in the registry's ownership history,
// ordered oldest first.
type OwnershipEntry struct {
	Owner         string  `json:"owner"`
	DateAcquired  string  `json:"dateAcquired"`
	PurchasePrice float64 `json:"purchasePrice"`
}

// RegistryRecord is the property registry's view of the parcel.
type RegistryRecord struct {
	OwnershipHistory []OwnershipEntry `json:"ownershipHistory"`
	LegalStatus      string           `json:"legalStatus"`
	TaxAssessment    float64          `json:"taxAssessment"`
}

// Appreciation holds trailing percentage gains.
type Appreciation struct {
	OneYear   float64 `json:"oneYear"`
	ThreeYear float64 `json:"threeYear"`
	FiveYear  float64 `json:"fiveYear"`
}

// ValuationRecord is the valuation platform's estimate.
type ValuationRecord struct {
	EstimatedValue float64      `json:"estimatedValue"`
	PricePerSqFt   float64      `json:"pricePerSqFt"`
	MarketTrend    MarketTrend  `json:"marketTrend"`
	Appreciation   Appreciation `json:"appreciation"`
}

// RiskRecord is the risk assessment provider's view.
type RiskRecord struct {
	FloodRisk    RiskLevel `json:"floodRisk"`
	CrimeRate    RiskLevel `json:"crimeRate"`
	SchoolRating float64   `json:"schoolRating"`
	WalkScore    int       `json:"walkScore"`
}

// SourceLatencies records fetch durations in source order.
type SourceLatencies struct {
	Registry  time.Duration
	Valuation time.Duration
	Risk      time.Duration
}

// Snapshot is the unified property view handed to scoring and quorum. It is
// assembled once by the aggregator and treated as read-only downstream.
// Per-source fields keep a fixed registry, valuation, risk order regardless
// of fetch completion order.
type Snapshot struct {
	Address   Address
	Registry  *RegistryRecord
	Valuation *ValuationRecord
	Risk      *RiskRecord

	// Degraded lists sources that failed, in source order.
	Degraded  []SourceName
	Latencies SourceLatencies
	FetchedAt time.Time
}

// DataSourcesVerified is the number of sources that returned successfully.
func (s *Snapshot) DataSourcesVerified() int {
	n := 0
	if s.Registry != nil {
		n++
	}
	if s.Valuation != nil {
		n++
	}
	if s.Risk != nil {
		n++
	}
	return n
}

// EstimatedValue returns the valuation estimate, or the registry tax
// assessment when the valuation source is degraded.
func (s *Snapshot) EstimatedValue() float64 {
	if s.Valuation != nil {
		return s.Valuation.EstimatedValue
	}
	if s.Registry != nil {
		return s.Registry.TaxAssessment
	}
	return 0
}

// AnnualYield estimates rental yield as a percentage, assuming monthly rent
// of 0.5% of estimated value.
func (s *Snapshot) AnnualYield() float64 {
	value := s.EstimatedValue()
	if value <= 0 {
		return 0
	}
	annualRent := value * 0.005 * 12
	return annualRent / value * 100
}

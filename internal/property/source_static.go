package property

import "context"

// Static sources return fixture records for any address. They back local
// development and tests when no provider URL is configured.

type StaticRegistrySource struct{}

func (StaticRegistrySource) FetchRegistry(_ context.Context, _ Address) (*RegistryRecord, error) {
	return &RegistryRecord{
		OwnershipHistory: []OwnershipEntry{
			{Owner: "Previous Owner", DateAcquired: "2018-03-15", PurchasePrice: 450000},
			{Owner: "Current Owner", DateAcquired: "2021-06-20", PurchasePrice: 520000},
		},
		LegalStatus:   "Clear Title",
		TaxAssessment: 495000,
	}, nil
}

type StaticValuationSource struct{}

func (StaticValuationSource) FetchValuation(_ context.Context, _ Address) (*ValuationRecord, error) {
	return &ValuationRecord{
		EstimatedValue: 565000,
		PricePerSqFt:   285,
		MarketTrend:    TrendRising,
		Appreciation: Appreciation{
			OneYear:   5.2,
			ThreeYear: 18.5,
			FiveYear:  32.1,
		},
	}, nil
}

type StaticRiskSource struct{}

func (StaticRiskSource) FetchRisk(_ context.Context, _ Address) (*RiskRecord, error) {
	return &RiskRecord{
		FloodRisk:    RiskLow,
		CrimeRate:    RiskLow,
		SchoolRating: 8.5,
		WalkScore:    72,
	}, nil
}

// StaticSources bundles all three fixture providers.
func StaticSources() Sources {
	return Sources{
		Registry:  StaticRegistrySource{},
		Valuation: StaticValuationSource{},
		Risk:      StaticRiskSource{},
	}
}

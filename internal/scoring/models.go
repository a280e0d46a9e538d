// Package scoring turns a property snapshot into an investment score, either
// via the external scoring service or, when that service is unreachable, via
// a deterministic local fallback. Score never fails: the caller always gets a
// Result and can tell the two variants apart by Source.
package scoring

// FraudLikelihood grades the chance the listing is fraudulent.
type FraudLikelihood string

const (
	FraudLow    FraudLikelihood = "LOW"
	FraudMedium FraudLikelihood = "MEDIUM"
	FraudHigh   FraudLikelihood = "HIGH"
)

// Recommendation is the investment call derived from the score.
type Recommendation string

const (
	StrongBuy Recommendation = "STRONG_BUY"
	Buy       Recommendation = "BUY"
	Hold      Recommendation = "HOLD"
	Avoid     Recommendation = "AVOID"
)

// ResultSource distinguishes external results from local fallbacks.
type ResultSource string

const (
	SourceExternal ResultSource = "EXTERNAL"
	SourceFallback ResultSource = "FALLBACK"
)

// Confidence levels are fixed per source. Fallback confidence must stay
// strictly below external confidence so degraded results are visibly less
// trustworthy.
const (
	ExternalConfidence = 0.85
	FallbackConfidence = 0.5
)

// Result is the scoring outcome consumed by the verification engine.
type Result struct {
	InvestmentScore int
	FraudLikelihood FraudLikelihood
	Recommendation  Recommendation
	Confidence      float64
	Summary         string
	Source          ResultSource
}

// RecommendationForScore applies the threshold table shared by the external
// mapping and the fallback policy.
func RecommendationForScore(score int) Recommendation {
	switch {
	case score >= 80:
		return StrongBuy
	case score >= 70:
		return Buy
	case score >= 50:
		return Hold
	default:
		return Avoid
	}
}

// FraudLikelihoodForFlags maps a flagged risk factor count to a likelihood:
// 0 flags LOW, 1-2 MEDIUM, 3+ HIGH.
func FraudLikelihoodForFlags(flags int) FraudLikelihood {
	switch {
	case flags == 0:
		return FraudLow
	case flags >= 3:
		return FraudHigh
	default:
		return FraudMedium
	}
}

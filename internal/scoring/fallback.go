package scoring

import (
	"fmt"
	"strings"

	"assetoracle/internal/property"
)

// fallbackBaselineScore is the fixed score used when the external service is
// unreachable. The pipeline must complete on local data alone.
const fallbackBaselineScore = 78

// Fallback computes a deterministic scoring result from the snapshot's own
// risk data. Same snapshot in, same result out.
func Fallback(snapshot *property.Snapshot) Result {
	score := fallbackBaselineScore
	return Result{
		InvestmentScore: score,
		FraudLikelihood: FraudLikelihoodForFlags(countRiskFlags(snapshot)),
		Recommendation:  RecommendationForScore(score),
		Confidence:      FallbackConfidence,
		Summary:         fallbackSummary(snapshot),
		Source:          SourceFallback,
	}
}

// countRiskFlags counts the snapshot's flagged risk factors: non-LOW flood
// risk, non-LOW crime rate, school rating below 5, walk score below 40, and
// a falling market trend.
func countRiskFlags(snapshot *property.Snapshot) int {
	flags := 0
	if risk := snapshot.Risk; risk != nil {
		if risk.FloodRisk != property.RiskLow {
			flags++
		}
		if risk.CrimeRate != property.RiskLow {
			flags++
		}
		if risk.SchoolRating < 5 {
			flags++
		}
		if risk.WalkScore < 40 {
			flags++
		}
	}
	if snapshot.Valuation != nil && snapshot.Valuation.MarketTrend == property.TrendFalling {
		flags++
	}
	return flags
}

func fallbackSummary(snapshot *property.Snapshot) string {
	if snapshot.Valuation == nil {
		return "Property analysis based on partial data; valuation source unavailable."
	}
	trend := strings.ToLower(string(snapshot.Valuation.MarketTrend))
	return fmt.Sprintf("Property analysis based on available data. Market shows %s trends.", trend)
}

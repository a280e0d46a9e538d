package verification

import (
	"time"

	"assetoracle/internal/asset/models"
	"assetoracle/internal/property"
	"assetoracle/internal/quorum"
	"assetoracle/internal/scoring"
	"assetoracle/pkg/dochash"
)

// BuildRecord assembles the verification record. It is pure: the same inputs
// always produce the same record, including the document hash over the
// canonical {description, location, name} document.
func BuildRecord(
	name, description string,
	snapshot *property.Snapshot,
	score scoring.Result,
	tally quorum.Tally,
	status models.VerificationStatus,
	at time.Time,
) Record {
	return Record{
		PropertyAddress:     snapshot.Address.Full(),
		DocumentHash:        dochash.Compute(name, description, snapshot.Address.Full()),
		EstimatedValue:      snapshot.EstimatedValue(),
		RiskScore:           score.InvestmentScore,
		FraudLikelihood:     score.FraudLikelihood,
		Status:              string(status),
		Recommendation:      score.Recommendation,
		Timestamp:           at.Unix(),
		DataSourcesVerified: snapshot.DataSourcesVerified(),
		QuorumSummary:       tally.Summary(),
	}
}

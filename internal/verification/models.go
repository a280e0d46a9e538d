// Package verification runs the full pipeline for one asset: aggregate
// property data, score it, put the snapshot digest through the simulated
// verifier quorum, resolve the terminal status, and commit the transition
// together with its record.
package verification

import (
	"time"

	"assetoracle/internal/scoring"
)

// RunStatus tracks one verification run through the run store.
type RunStatus string

const (
	RunRunning   RunStatus = "RUNNING"
	RunFulfilled RunStatus = "FULFILLED"
	RunFailed    RunStatus = "FAILED"
)

// Record is the immutable artifact of one verification run. Once built it is
// persisted and surfaced as-is; re-running verification produces a new record
// rather than mutating this one.
type Record struct {
	PropertyAddress     string                  `json:"propertyAddress"`
	DocumentHash        string                  `json:"documentHash"`
	EstimatedValue      float64                 `json:"estimatedValue"`
	RiskScore           int                     `json:"riskScore"`
	FraudLikelihood     scoring.FraudLikelihood `json:"fraudLikelihood"`
	Status              string                  `json:"status"`
	Recommendation      scoring.Recommendation  `json:"recommendation"`
	Timestamp           int64                   `json:"timestamp"`
	DataSourcesVerified int                     `json:"dataSourcesVerified"`
	QuorumSummary       string                  `json:"quorumSummary"`
}

// Run is the tracked state of one verification run.
type Run struct {
	ID          string    `json:"id"`
	AssetID     string    `json:"assetId,omitempty"`
	Status      RunStatus `json:"status"`
	Record      *Record   `json:"record,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt,omitzero"`
}

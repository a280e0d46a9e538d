// Package audit captures an append-only trail of asset and verification
// activity.
package audit

import "time"

// Actions recorded by the trail.
const (
	ActionAssetRegistered     = "asset.registered"
	ActionVerificationStarted = "verification.started"
	ActionVerificationDone    = "verification.completed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	AssetID   string    `json:"assetId"`
	RunID     string    `json:"runId,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Action    string    `json:"action"`
	Outcome   string    `json:"outcome,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

package verification

import "assetoracle/internal/asset/models"

// VerifiedThreshold is the minimum investment score for a VERIFIED outcome.
const VerifiedThreshold = 70

// Resolve applies the state machine transition rule for a run that started
// from PENDING. Quorum failure is fatal to the run regardless of score.
func Resolve(investmentScore int, quorumReached bool) models.VerificationStatus {
	if !quorumReached {
		return models.StatusRejected
	}
	if investmentScore >= VerifiedThreshold {
		return models.StatusVerified
	}
	return models.StatusNeedsReview
}

package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"assetoracle/internal/asset/models"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		reached bool
		want    models.VerificationStatus
	}{
		{"high score with quorum", 85, true, models.StatusVerified},
		{"threshold score with quorum", 70, true, models.StatusVerified},
		{"low score with quorum", 55, true, models.StatusNeedsReview},
		{"just below threshold", 69, true, models.StatusNeedsReview},
		{"quorum failure beats high score", 95, false, models.StatusRejected},
		{"quorum failure beats low score", 10, false, models.StatusRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.score, tt.reached))
		})
	}
}

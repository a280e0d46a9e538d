// Package store tracks verification runs so status checks can be answered
// while a run is in flight and after it completes.
package store

import (
	"context"

	"assetoracle/internal/verification"
	dErrors "assetoracle/pkg/domain-errors"
)

// RunStore persists verification runs keyed by run ID.
type RunStore interface {
	Save(ctx context.Context, run verification.Run) error
	Find(ctx context.Context, id string) (verification.Run, error)
}

// ErrRunNotFound is returned for unknown run IDs.
var ErrRunNotFound = dErrors.New(dErrors.CodeNotFound, "verification run not found")

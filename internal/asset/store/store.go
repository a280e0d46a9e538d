// Package store persists assets. Implementations are interface-driven so the
// service layer can run against memory in tests and postgres in production.
package store

import (
	"context"

	"assetoracle/internal/asset/models"
	dErrors "assetoracle/pkg/domain-errors"
)

// Store is the asset persistence contract.
type Store interface {
	Save(ctx context.Context, asset models.Asset) error
	FindByID(ctx context.Context, id string) (models.Asset, error)
	List(ctx context.Context, filter models.ListFilter) (models.Page, error)

	// Transition moves the asset from one verification status to another
	// atomically. It fails with CodeConflict when the current status does
	// not match from, which serializes concurrent verification runs on the
	// same asset.
	Transition(ctx context.Context, id string, from, to models.VerificationStatus, data models.BlockchainData) (models.Asset, error)
}

// Shared store errors.
var (
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "asset not found")
	ErrConflict = dErrors.New(dErrors.CodeConflict, "asset status changed concurrently")
)

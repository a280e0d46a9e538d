// Package service implements asset registration and read paths, including the
// visibility rules for unverified assets.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"assetoracle/internal/asset/models"
	"assetoracle/internal/asset/store"
	"assetoracle/internal/audit"
	"assetoracle/internal/platform/metrics"
	"assetoracle/pkg/dochash"
	dErrors "assetoracle/pkg/domain-errors"
)

// AuditPublisher records asset lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// RegisterInput is the payload accepted for asset registration.
type RegisterInput struct {
	Name           string
	Description    string
	Category       string
	EstimatedValue float64
	Location       models.Location
	OwnerWallet    string
}

// Service orchestrates asset registration and reads.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	auditor AuditPublisher
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditor = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs a Service.
func New(assets store.Store, opts ...Option) *Service {
	s := &Service{store: assets, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new asset in PENDING status. The canonical document hash
// is computed once here so later verification runs anchor the same document.
func (s *Service) Register(ctx context.Context, input RegisterInput) (models.Asset, error) {
	if err := validateRegisterInput(input); err != nil {
		return models.Asset{}, err
	}

	now := s.now()
	asset := models.Asset{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
		Category:       input.Category,
		EstimatedValue: input.EstimatedValue,
		Location:       input.Location,
		// Wallets compare case-insensitively on chain, so store them lowered.
		OwnerWallet:        strings.ToLower(strings.TrimSpace(input.OwnerWallet)),
		VerificationStatus: models.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if asset.Category == "" {
		asset.Category = models.CategoryRealEstate
	}
	asset.BlockchainData.DocumentHash = dochash.Compute(asset.Name, asset.Description, asset.Location.Full())

	if err := s.store.Save(ctx, asset); err != nil {
		return models.Asset{}, err
	}

	if s.metrics != nil {
		s.metrics.AssetsRegistered.Inc()
	}
	if s.auditor != nil {
		if err := s.auditor.Emit(ctx, audit.Event{
			AssetID: asset.ID,
			Actor:   asset.OwnerWallet,
			Action:  audit.ActionAssetRegistered,
		}); err != nil {
			s.logger.WarnContext(ctx, "audit emit failed", "asset_id", asset.ID, "error", err)
		}
	}
	s.logger.InfoContext(ctx, "asset registered",
		"asset_id", asset.ID,
		"owner_wallet", asset.OwnerWallet,
		"document_hash", asset.BlockchainData.DocumentHash,
	)
	return asset, nil
}

func validateRegisterInput(input RegisterInput) error {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Description) == "" {
		missing = append(missing, "description")
	}
	if input.EstimatedValue <= 0 {
		missing = append(missing, "estimatedValue")
	}
	if strings.TrimSpace(input.OwnerWallet) == "" {
		missing = append(missing, "ownerWallet")
	}
	if len(missing) > 0 {
		return dErrors.Newf(dErrors.CodeBadRequest, "missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Get returns an asset if the caller may see it. Non-verified assets are
// visible only to their owner.
func (s *Service) Get(ctx context.Context, id, callerWallet string) (models.Asset, error) {
	asset, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Asset{}, err
	}
	if asset.VerificationStatus != models.StatusVerified &&
		asset.OwnerWallet != strings.ToLower(callerWallet) {
		return models.Asset{}, dErrors.New(dErrors.CodeForbidden, "asset is not publicly visible")
	}
	return asset, nil
}

// List returns a page of assets. Anonymous callers only ever see VERIFIED
// assets; authenticated callers additionally see their own.
func (s *Service) List(ctx context.Context, filter models.ListFilter, callerWallet string) (models.Page, error) {
	filter.VerifiedOnly = true
	filter.OwnerWallet = strings.ToLower(callerWallet)
	return s.store.List(ctx, filter)
}

package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"assetoracle/internal/asset/models"
)

// InMemoryStore keeps assets in a map. It favors clarity over performance
// and backs unit tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	assets map[string]models.Asset
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{assets: make(map[string]models.Asset)}
}

func (s *InMemoryStore) Save(_ context.Context, asset models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[asset.ID] = asset
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if asset, ok := s.assets[id]; ok {
		return asset, nil
	}
	return models.Asset{}, ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context, filter models.ListFilter) (models.Page, error) {
	filter = filter.Normalize()

	s.mu.RLock()
	var matched []models.Asset
	for _, asset := range s.assets {
		if matches(asset, filter) {
			matched = append(matched, asset)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	return models.Page{
		Assets: append([]models.Asset{}, matched[start:end]...),
		Total:  total,
		PageNo: filter.Page,
		Limit:  filter.Limit,
	}, nil
}

func matches(asset models.Asset, filter models.ListFilter) bool {
	if filter.VerifiedOnly && asset.VerificationStatus != models.StatusVerified {
		// Owners still see their own unverified assets.
		if filter.OwnerWallet == "" || asset.OwnerWallet != filter.OwnerWallet {
			return false
		}
	}
	if filter.Category != "" && asset.Category != filter.Category {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystack := strings.ToLower(asset.Name + " " + asset.Location.City + " " + asset.Location.State)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func (s *InMemoryStore) Transition(_ context.Context, id string, from, to models.VerificationStatus, data models.BlockchainData) (models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[id]
	if !ok {
		return models.Asset{}, ErrNotFound
	}
	if asset.VerificationStatus != from {
		return models.Asset{}, ErrConflict
	}

	asset.VerificationStatus = to
	if data.DocumentHash != "" {
		asset.BlockchainData.DocumentHash = data.DocumentHash
	}
	if data.VerificationID != "" {
		asset.BlockchainData.VerificationID = data.VerificationID
	}
	if !data.VerifiedAt.IsZero() {
		asset.BlockchainData.VerifiedAt = data.VerifiedAt
	}
	if data.Network != "" {
		asset.BlockchainData.Network = data.Network
	}
	asset.UpdatedAt = time.Now()
	s.assets[id] = asset
	return asset, nil
}

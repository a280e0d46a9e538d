// Package models defines the asset types shared by stores, services, and
// handlers.
package models

import "time"

// VerificationStatus is the asset's position in the verification state
// machine. Assets are created PENDING and moved exactly once per
// verification run to a terminal status.
type VerificationStatus string

const (
	StatusPending     VerificationStatus = "PENDING"
	StatusVerified    VerificationStatus = "VERIFIED"
	StatusNeedsReview VerificationStatus = "NEEDS_REVIEW"
	StatusRejected    VerificationStatus = "REJECTED"
)

// Terminal reports whether the status ends a verification run.
func (s VerificationStatus) Terminal() bool {
	return s == StatusVerified || s == StatusNeedsReview || s == StatusRejected
}

// Valid reports whether the status is one of the known states.
func (s VerificationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusNeedsReview, StatusRejected:
		return true
	}
	return false
}

// CategoryRealEstate is the default asset category.
const CategoryRealEstate = "REAL_ESTATE"

// Location is the asset's physical location.
type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip,omitempty"`
}

// Full renders the location as a single line used in the canonical document
// hash.
func (l Location) Full() string {
	full := l.Address
	if l.City != "" {
		full += ", " + l.City
	}
	if l.State != "" {
		full += ", " + l.State
	}
	if l.Zip != "" {
		full += " " + l.Zip
	}
	return full
}

// BlockchainData is the on-chain anchor for a verified asset. Only the
// payload is produced here; actual submission is an external concern.
type BlockchainData struct {
	DocumentHash   string    `json:"documentHash"`
	VerificationID string    `json:"verificationId,omitempty"`
	VerifiedAt     time.Time `json:"verifiedAt,omitzero"`
	Network        string    `json:"network,omitempty"`
}

// Asset is the registered real-world asset under verification.
type Asset struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Category           string             `json:"category"`
	EstimatedValue     float64            `json:"estimatedValue"`
	Location           Location           `json:"location"`
	OwnerWallet        string             `json:"ownerWallet"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	BlockchainData     BlockchainData     `json:"blockchainData"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// ListFilter selects assets for listing. VerifiedOnly is forced for
// anonymous callers at the service layer; OwnerWallet additionally admits
// the caller's own non-verified assets when set.
type ListFilter struct {
	Category     string
	Search       string
	Page         int
	Limit        int
	VerifiedOnly bool
	OwnerWallet  string
}

// Normalize clamps pagination to sane bounds.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return f
}

// Page is one page of listing results.
type Page struct {
	Assets []Asset `json:"assets"`
	Total  int     `json:"total"`
	PageNo int     `json:"page"`
	Limit  int     `json:"limit"`
}

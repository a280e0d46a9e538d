// Package dochash computes the content hash anchoring an asset's identity
// documents. The serialization is canonical: fixed field order, no
// whitespace, so the same logical input always yields the same hash.
package dochash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// document fixes the canonical field order (alphabetical).
type document struct {
	Description string `json:"description"`
	Location    string `json:"location"`
	Name        string `json:"name"`
}

// Compute returns the hex-encoded SHA-256 of the canonical serialization of
// {name, description, location}.
func Compute(name, description, location string) string {
	canonical, err := json.Marshal(document{
		Description: description,
		Location:    location,
		Name:        name,
	})
	if err != nil {
		// Marshaling a struct of strings cannot fail.
		panic(err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

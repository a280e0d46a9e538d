package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress(t *testing.T) {
	t.Run("full address with zip", func(t *testing.T) {
		addr := NormalizeAddress("123 Main St, San Francisco, CA 94105")
		assert.Equal(t, "123 Main St", addr.Street)
		assert.Equal(t, "San Francisco", addr.City)
		assert.Equal(t, "CA", addr.State)
		assert.Equal(t, "94105", addr.Zip)
	})

	t.Run("missing components fall back to placeholders", func(t *testing.T) {
		addr := NormalizeAddress("456 Oak Ave")
		assert.Equal(t, "456 Oak Ave", addr.Street)
		assert.Equal(t, PlaceholderCity, addr.City)
		assert.Equal(t, PlaceholderState, addr.State)
		assert.Empty(t, addr.Zip)
	})

	t.Run("empty input yields all placeholders", func(t *testing.T) {
		addr := NormalizeAddress("")
		assert.Equal(t, PlaceholderStreet, addr.Street)
		assert.Equal(t, PlaceholderCity, addr.City)
		assert.Equal(t, PlaceholderState, addr.State)
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		addr := NormalizeAddress("  9 Pine Rd ,  Austin , TX ")
		assert.Equal(t, "9 Pine Rd", addr.Street)
		assert.Equal(t, "Austin", addr.City)
		assert.Equal(t, "TX", addr.State)
	})
}

func TestAddressRendering(t *testing.T) {
	addr := Address{Street: "123 Main St", City: "San Francisco", State: "CA", Zip: "94105"}
	assert.Equal(t, "123 Main St, San Francisco, CA 94105", addr.Full())
	assert.Equal(t, "San Francisco, CA", addr.Location())

	noZip := Address{Street: "123 Main St", City: "San Francisco", State: "CA"}
	assert.Equal(t, "123 Main St, San Francisco, CA", noZip.Full())
}

package dochash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeIsDeterministic(t *testing.T) {
	first := Compute("Sunset Villa", "3BR family home", "123 Main St, San Francisco, CA")
	second := Compute("Sunset Villa", "3BR family home", "123 Main St, San Francisco, CA")
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestComputeChangesWithAnyField(t *testing.T) {
	base := Compute("Sunset Villa", "3BR family home", "123 Main St, San Francisco, CA")

	assert.NotEqual(t, base, Compute("Sunset Villa II", "3BR family home", "123 Main St, San Francisco, CA"))
	assert.NotEqual(t, base, Compute("Sunset Villa", "4BR family home", "123 Main St, San Francisco, CA"))
	assert.NotEqual(t, base, Compute("Sunset Villa", "3BR family home", "456 Oak Ave, Austin, TX"))
}

func TestComputeFieldsDoNotBleedAcrossBoundaries(t *testing.T) {
	// Moving a suffix between adjacent fields must change the hash.
	assert.NotEqual(t,
		Compute("ab", "c", "loc"),
		Compute("a", "bc", "loc"),
	)
}

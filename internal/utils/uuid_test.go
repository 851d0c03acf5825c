package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	id := g.Generate()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.False(t, models.IsProvisionalID(id))
}

func TestUUIDGenerator_GenerateProvisional(t *testing.T) {
	g := NewUUIDGenerator()

	seen := make(map[string]struct{})
	for range 100 {
		id := g.GenerateProvisional()
		require.True(t, models.IsProvisionalID(id))
		_, err := uuid.Parse(strings.TrimPrefix(id, models.ProvisionalIDPrefix))
		require.NoError(t, err)

		_, dup := seen[id]
		require.False(t, dup, "duplicate provisional id %s", id)
		seen[id] = struct{}{}
	}
}

package utils

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

// UUIDGenerator hands out time-ordered UUIDv7 identifiers, falling back to a
// random v4 when the clock source fails.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// GenerateProvisional returns a temporary record id for a create that has not
// reached the backend yet. It is unique within the process and always carries
// [models.ProvisionalIDPrefix].
func (g *UUIDGenerator) GenerateProvisional() string {
	return models.ProvisionalIDPrefix + g.Generate()
}

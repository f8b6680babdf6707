package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered UUID v7 strings for profile and note
// IDs.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUID v7, or a random v4 when the clock-based variant
// cannot be produced.
func (g *UUIDGenerator) Generate() string {
	if v7, err := uuid.NewV7(); err == nil {
		return v7.String()
	}
	return uuid.NewString()
}

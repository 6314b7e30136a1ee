package utils

import "github.com/google/uuid"

// NewAccountID returns a time-ordered UUIDv7, falling back to a random v4
// when the clock-based generator fails.
func NewAccountID() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, HTTP response
// writing, JWT token generation and validation, identifier and nickname
// generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/google/uuid"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// AccountIDCtxKey is the key under which the auth middleware stores the
	// authenticated account ID (uuid.UUID).
	AccountIDCtxKey = contextKey("accountID")

	// RoleCtxKey is the key under which the auth middleware stores the
	// caller role (models.Role).
	RoleCtxKey = contextKey("role")
)

// WithPrincipal returns a copy of ctx carrying the authenticated account ID
// and role.
func WithPrincipal(ctx context.Context, accountID uuid.UUID, role models.Role) context.Context {
	ctx = context.WithValue(ctx, AccountIDCtxKey, accountID)
	return context.WithValue(ctx, RoleCtxKey, role)
}

// GetAccountIDFromContext retrieves the account identifier from the context.
//
// Returns ok == false when the value is missing or has an unexpected type.
func GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(uuid.UUID)
	return accountID, ok
}

// GetRoleFromContext retrieves the caller role from the context. Requests
// without a principal are ANONYMOUS.
func GetRoleFromContext(ctx context.Context) models.Role {
	role, ok := ctx.Value(RoleCtxKey).(models.Role)
	if !ok || !role.Valid() {
		return models.RoleAnonymous
	}
	return role
}

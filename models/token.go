package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the JWT payload issued to authenticated accounts.
//
// Besides the registered claims ("sub", "exp", "iat", "iss") it carries the
// account role in its canonical upper-case form.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the upper-case canonical role name (see [Role.String]).
	Role Role `json:"role"`
}

// Token wraps a signed or parsed JWT with the values the transport layer
// needs after validation.
type Token struct {
	// Token is the underlying JWT. Excluded from JSON serialization because
	// only the compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation
	// (base64url header.payload.signature).
	SignedString string `json:"-"`

	// AccountID is the parsed "sub" claim.
	AccountID uuid.UUID `json:"-"`

	// Role is the parsed "role" claim.
	Role Role `json:"-"`
}

// GetAccountID extracts the account identifier from the subject claim.
func (c *Claims) GetAccountID() (uuid.UUID, error) {
	sub, err := c.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("error extracting AccountID from token: %w", err)
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error converting AccountID from token to uuid: %w", err)
	}

	return id, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

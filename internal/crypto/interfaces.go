// Package crypto holds the credential primitives of the account service:
// password hashing and opaque token generation.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into one-way hashes and checks
// candidates against them.
type PasswordHasher interface {
	// Hash returns a salted, self-describing hash of plain. Two calls with the
	// same input produce different outputs.
	Hash(plain string) (string, error)

	// Verify reports whether plain matches hash. A malformed hash never
	// matches.
	Verify(plain, hash string) bool
}

// TokenGenerator produces opaque, URL-safe, single-use tokens such as the
// email verification token.
type TokenGenerator interface {
	Generate() (string, error)
}

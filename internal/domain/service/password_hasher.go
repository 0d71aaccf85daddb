// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password at the given cost.
	Hash(password string, cost int) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	// An empty password or hash is a mismatch, never an error.
	Check(password, hash string) bool
}

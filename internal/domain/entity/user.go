// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core account record of the marketplace. It carries the
// credential material (hash and cost) alongside identity fields; the
// auth flows never hand the hash back to callers.
type User struct {
	ID                 int64     // Auto-incremented primary identifier.
	Email              string    // The user's login identifier, unique across the system.
	PasswordHash       string    // bcrypt hash of the user's password.
	PasswordSaltRounds int       // bcrypt cost the hash was produced with.
	Role               Role      // The user's single marketplace role.
	CreatedAt          time.Time // Timestamp of when this account was created.
	UpdatedAt          time.Time // Timestamp of the last modification to this account.
}

// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bookly/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
// The store enforces email uniqueness; concurrent creates for the same email
// must surface exactly one success and one conflict.
type UserRepository interface {
	// FindByEmail retrieves a user by email with the credential projection:
	// id, email, role, password hash and salt rounds. Nothing else is fetched.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail reports whether an account with this email exists,
	// using an id-only projection.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByID retrieves a user by id with the identity projection: id, email, role.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// Create persists a new user entity and fills in the generated id and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// UpdatePassword overwrites the stored password hash and salt rounds for a user.
	UpdatePassword(ctx context.Context, id int64, passwordHash string, saltRounds int) error

	// List returns all users with the identity projection, newest first.
	List(ctx context.Context) ([]*entity.User, error)
}

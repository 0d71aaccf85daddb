package usecase

import "context"

// UserUsecase defines the read-side operations over accounts exposed to
// authenticated callers.
type UserUsecase interface {
	// GetProfile returns the sanitized account for the calling user.
	GetProfile(ctx context.Context, userID int64) (*AuthenticatedUser, error)

	// ListUsers returns every account, newest first. Admin-only at the route level.
	ListUsers(ctx context.Context) ([]*AuthenticatedUser, error)
}

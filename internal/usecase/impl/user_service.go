package impl

import (
	"context"
	"log/slog"

	domainerrors "bookly/internal/domain/errors"
	"bookly/internal/domain/repository"
	"bookly/internal/errors"
	"bookly/internal/usecase"
)

// userService implements the usecase.UserUsecase interface.
type userService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(users repository.UserRepository, logger *slog.Logger) usecase.UserUsecase {
	return &userService{
		users:  users,
		logger: logger,
	}
}

// GetProfile returns the sanitized account for the given user id.
func (srv *userService) GetProfile(ctx context.Context, userID int64) (*usecase.AuthenticatedUser, error) {
	user, err := srv.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load user profile")
	}

	return &usecase.AuthenticatedUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// ListUsers returns every account, newest first.
func (srv *userService) ListUsers(ctx context.Context) ([]*usecase.AuthenticatedUser, error) {
	users, err := srv.users.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	out := make([]*usecase.AuthenticatedUser, 0, len(users))
	for _, user := range users {
		out = append(out, &usecase.AuthenticatedUser{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		})
	}

	return out, nil
}

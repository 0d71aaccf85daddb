// Package impl contains the concrete implementations of the usecase interfaces.
package impl

import (
	"context"
	"log/slog"

	"bookly/config"
	"bookly/internal/domain/entity"
	domainerrors "bookly/internal/domain/errors"
	"bookly/internal/domain/repository"
	"bookly/internal/domain/service"
	"bookly/internal/errors"
	"bookly/internal/usecase"
)

const (
	// defaultSaltRounds is used when the configured bcrypt cost is absent
	// or below the sanity floor.
	defaultSaltRounds = 10
	minSaltRounds     = 4
)

// authService implements the usecase.AuthUsecase interface.
type authService struct {
	users  repository.UserRepository
	hasher service.PasswordHasher
	tokens service.TokenService
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	users repository.UserRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		cfg:    cfg,
		logger: logger,
	}
}

// Login verifies an email and password pair and establishes a session.
// Unknown email and wrong password are deliberately indistinguishable.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login rejected")
		}

		return nil, errors.Wrap(err, "failed to load credential for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login rejected")
	}

	srv.logger.Debug("user logged in", slog.Int64("userID", user.ID))

	return srv.establishSession(user)
}

// Register creates a new customer account and establishes a session.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	exists, err := srv.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email availability")
	}
	if exists {
		return nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("registration rejected")
	}

	rounds := srv.saltRounds()
	hash, err := srv.hasher.Hash(input.Password, rounds)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:              input.Email,
		PasswordHash:       hash,
		PasswordSaltRounds: rounds,
		Role:               entity.RoleCustomer,
	}

	// The existence probe above is advisory. The store's unique constraint
	// settles concurrent registrations for the same email, surfacing the
	// loser as ErrEmailAlreadyRegistered.
	if err := srv.users.Create(ctx, newUser); err != nil {
		return nil, err
	}

	srv.logger.Info("user registered", slog.Int64("userID", newUser.ID))

	return srv.establishSession(newUser)
}

// Refresh exchanges a valid refresh token for a brand-new access/refresh pair.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.AuthOutput, error) {
	claims, err := srv.tokens.Verify(input.RefreshToken, service.KindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := srv.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// A token that outlived its account is just an invalid token.
			return nil, domainerrors.ErrInvalidToken.WrapMessage("refresh rejected")
		}

		return nil, errors.Wrap(err, "failed to load user for refresh")
	}

	return srv.establishSession(user)
}

// RequestPasswordReset issues a short-lived reset token for an existing
// account. The response is identical for unknown emails so the endpoint
// cannot be used to enumerate accounts.
func (srv *authService) RequestPasswordReset(ctx context.Context, input *usecase.PasswordResetRequestInput) (*usecase.PasswordResetRequestOutput, error) {
	user, err := srv.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return &usecase.PasswordResetRequestOutput{Success: true}, nil
		}

		return nil, errors.Wrap(err, "failed to load user for password reset")
	}

	resetToken, err := srv.tokens.Issue(user, service.KindPasswordReset)
	if err != nil {
		return nil, err
	}

	srv.logger.Info("password reset requested", slog.Int64("userID", user.ID))

	// The token is returned to the caller directly; there is no mail
	// delivery integration on this path yet.
	return &usecase.PasswordResetRequestOutput{
		Success:    true,
		ResetToken: resetToken,
	}, nil
}

// ResetPassword redeems a reset token, overwrites the stored credential and
// establishes a fresh session.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.PasswordResetConfirmInput) (*usecase.AuthOutput, error) {
	claims, err := srv.tokens.Verify(input.Token, service.KindPasswordReset)
	if err != nil {
		return nil, err
	}

	user, err := srv.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidToken.WrapMessage("password reset rejected")
		}

		return nil, errors.Wrap(err, "failed to load user for password reset")
	}

	rounds := srv.saltRounds()
	hash, err := srv.hasher.Hash(input.NewPassword, rounds)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during reset")
	}

	if err := srv.users.UpdatePassword(ctx, user.ID, hash, rounds); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidToken.WrapMessage("password reset rejected")
		}

		return nil, err
	}

	srv.logger.Info("password reset completed", slog.Int64("userID", user.ID))

	return srv.establishSession(user)
}

// establishSession issues a token pair and assembles the sanitized output.
func (srv *authService) establishSession(user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: &usecase.AuthenticatedUser{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

func (srv *authService) saltRounds() int {
	if srv.cfg != nil && srv.cfg.Bcrypt.SaltRounds >= minSaltRounds {
		return srv.cfg.Bcrypt.SaltRounds
	}

	return defaultSaltRounds
}

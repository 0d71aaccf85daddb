// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"bookly/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries the refresh token to exchange for a new pair.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required,min=16"`
}

// PasswordResetRequestInput starts a password reset for an email address.
type PasswordResetRequestInput struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirmInput completes a password reset with the issued token.
type PasswordResetConfirmInput struct {
	Token       string `json:"token" validate:"required,min=16"`
	NewPassword string `json:"password" validate:"required,min=8"`
}

// --- Output DTOs ---

// AuthenticatedUser is the sanitized account shape handed to callers.
// It never carries the password hash.
type AuthenticatedUser struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
}

// AuthOutput is the result of every flow that establishes a session.
type AuthOutput struct {
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
	User         *AuthenticatedUser `json:"user"`
}

// PasswordResetRequestOutput is deliberately uniform: Success is true whether
// or not the email exists, so the endpoint cannot be used to enumerate
// accounts. The token only appears when one was issued.
type PasswordResetRequestOutput struct {
	Success    bool   `json:"success"`
	ResetToken string `json:"resetToken,omitempty"`
}

// AuthUsecase defines the interface for the authentication flows.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Login verifies a credential and establishes a session.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Register creates a new customer account and establishes a session.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Refresh exchanges a valid refresh token for a brand-new token pair.
	Refresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error)

	// RequestPasswordReset issues a password-reset token for an existing
	// account; the response shape is identical for unknown emails.
	RequestPasswordReset(ctx context.Context, input *PasswordResetRequestInput) (*PasswordResetRequestOutput, error)

	// ResetPassword redeems a password-reset token, stores the new
	// credential and establishes a session.
	ResetPassword(ctx context.Context, input *PasswordResetConfirmInput) (*AuthOutput, error)
}

package impl

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookly/config"
	"bookly/internal/domain/entity"
	domainerrors "bookly/internal/domain/errors"
	"bookly/internal/domain/service"
	"bookly/internal/infra/auth"
	"bookly/internal/usecase"
)

type authFixture struct {
	repo   *memoryUserRepository
	tokens service.TokenService
	auth   usecase.AuthUsecase
	users  usecase.UserUsecase
}

// newAuthFixture wires the real hasher and token service over the in-memory
// repository, so the flow tests exercise genuine bcrypt and RS256 round trips.
func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	privatePEM, publicPEM := testSigningKeys(t)

	cfg := &config.Config{}
	cfg.JWT.PrivateKey = privatePEM
	cfg.JWT.PublicKey = publicPEM
	cfg.Bcrypt.SaltRounds = bcrypt.MinCost

	repo := newMemoryUserRepository()
	tokens := auth.NewJWTService(cfg, auth.NewRSAKeyProvider(cfg))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &authFixture{
		repo:   repo,
		tokens: tokens,
		auth:   NewAuthService(repo, auth.NewBcryptHasher(), tokens, cfg, logger),
		users:  NewUserService(repo, logger),
	}
}

func testSigningKeys(t *testing.T) (privatePEM string, publicPEM string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM = string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	publicPEM = string(pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubDER,
	}))

	return privatePEM, publicPEM
}

func TestRegisterThenLogin(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()

	registered, err := fixture.auth.Register(ctx, &usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotNil(t, registered.User)
	assert.Equal(t, int64(1), registered.User.ID)
	assert.Equal(t, entity.RoleCustomer, registered.User.Role)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)

	claims, err := fixture.tokens.Verify(registered.AccessToken, service.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	loggedIn, err := fixture.auth.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
	assert.Equal(t, registered.User.Email, loggedIn.User.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()

	_, err := fixture.auth.Register(ctx, &usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, unknownErr := fixture.auth.Login(ctx, &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "correct horse battery",
	})
	_, wrongPasswordErr := fixture.auth.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "wrong password",
	})

	require.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	require.ErrorIs(t, wrongPasswordErr, domainerrors.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()

	_, err := fixture.auth.Register(ctx, &usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = fixture.auth.Register(ctx, &usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "another password",
	})
	require.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestRegisterConcurrentSameEmailSingleWinner(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = fixture.auth.Register(ctx, &usecase.RegisterInput{
				Email:    "race@example.com",
				Password: "correct horse battery",
			})
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()

	registered, err := fixture.auth.Register(ctx, &usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	refreshed, err := fixture.auth.Refresh(ctx, &usecase.RefreshInput{
		RefreshToken: registered.RefreshToken,
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
	assert.NotEqual(t, registered.AccessToken, refreshed.AccessToken)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	claims, err := fixture.tokens.Verify(refreshed.RefreshToken, service.KindRefresh)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()

	registered, err := fixture.auth.Register(ctx, &usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = fixture.auth.Refresh(ctx, &usecase.RefreshInput{
		RefreshToken: registered.AccessToken,
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestRefreshRejectsTokenForMissingUser(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()

	orphan := &entity.User{
		ID:    999,
		Email: "ghost@example.com",
		Role:  entity.RoleCustomer,
	}
	refreshToken, err := fixture.tokens.Issue(orphan, service.KindRefresh)
	require.NoError(t, err)

	_, err = fixture.auth.Refresh(ctx, &usecase.RefreshInput{RefreshToken: refreshToken})
	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestRequestPasswordResetUnknownEmailStillSucceeds(t *testing.T) {
	fixture := newAuthFixture(t)

	out, err := fixture.auth.RequestPasswordReset(context.Background(), &usecase.PasswordResetRequestInput{
		Email: "nobody@example.com",
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Empty(t, out.ResetToken)
}

func TestPasswordResetFlow(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()

	registered, err := fixture.auth.Register(ctx, &usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "old password here",
	})
	require.NoError(t, err)

	requested, err := fixture.auth.RequestPasswordReset(ctx, &usecase.PasswordResetRequestInput{
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	require.True(t, requested.Success)
	require.NotEmpty(t, requested.ResetToken)

	reset, err := fixture.auth.ResetPassword(ctx, &usecase.PasswordResetConfirmInput{
		Token:       requested.ResetToken,
		NewPassword: "brand new password",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, reset.User.ID)
	assert.NotEmpty(t, reset.AccessToken)

	_, err = fixture.auth.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "old password here",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = fixture.auth.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "brand new password",
	})
	require.NoError(t, err)
}

func TestResetPasswordRejectsNonResetToken(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()

	registered, err := fixture.auth.Register(ctx, &usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	// An access token must never be redeemable as a reset token.
	_, err = fixture.auth.ResetPassword(ctx, &usecase.PasswordResetConfirmInput{
		Token:       registered.AccessToken,
		NewPassword: "brand new password",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

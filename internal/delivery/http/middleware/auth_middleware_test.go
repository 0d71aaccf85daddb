package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookly/internal/domain/entity"
	domainerrors "bookly/internal/domain/errors"
	"bookly/internal/domain/service"
)

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(user *entity.User, kind service.TokenKind) (string, error) {
	args := m.Called(user, kind)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) IssuePair(user *entity.User) (string, string, error) {
	args := m.Called(user)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) Verify(tokenString string, kind service.TokenKind) (*service.Claims, error) {
	args := m.Called(tokenString, kind)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func newTestContext(t *testing.T, authHeader string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	return e.NewContext(req, httptest.NewRecorder())
}

func TestAuthenticateMissingHeader(t *testing.T) {
	tokenSvc := &mockTokenService{}
	m := NewAuthMiddleware(tokenSvc)

	err := m.Authenticate(func(echo.Context) error { return nil })(newTestContext(t, ""))
	require.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	tokenSvc.AssertNotCalled(t, "Verify")
}

func TestAuthenticateNonBearerHeader(t *testing.T) {
	tokenSvc := &mockTokenService{}
	m := NewAuthMiddleware(tokenSvc)

	err := m.Authenticate(func(echo.Context) error { return nil })(newTestContext(t, "Basic dXNlcjpwYXNz"))
	require.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	tokenSvc.AssertNotCalled(t, "Verify")
}

func TestAuthenticateRejectedToken(t *testing.T) {
	tokenSvc := &mockTokenService{}
	tokenSvc.On("Verify", "bad-token", service.KindAccess).
		Return(nil, domainerrors.ErrInvalidToken)
	m := NewAuthMiddleware(tokenSvc)

	err := m.Authenticate(func(echo.Context) error { return nil })(newTestContext(t, "Bearer bad-token"))
	require.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	tokenSvc.AssertExpectations(t)
}

func TestAuthenticateEstablishesIdentity(t *testing.T) {
	tokenSvc := &mockTokenService{}
	tokenSvc.On("Verify", "good-token", service.KindAccess).
		Return(&service.Claims{
			UserID:    42,
			Email:     "alice@example.com",
			Role:      entity.RoleCustomer.String(),
			TokenType: string(service.KindAccess),
		}, nil)
	m := NewAuthMiddleware(tokenSvc)

	c := newTestContext(t, "Bearer good-token")
	var handlerCalled bool
	err := m.Authenticate(func(c echo.Context) error {
		handlerCalled = true

		userID, ok := GetUserID(c)
		require.True(t, ok)
		assert.Equal(t, int64(42), userID)

		email, ok := GetUserEmail(c)
		require.True(t, ok)
		assert.Equal(t, "alice@example.com", email)

		role, ok := GetUserRole(c)
		require.True(t, ok)
		assert.Equal(t, entity.RoleCustomer, role)

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, handlerCalled)
	tokenSvc.AssertExpectations(t)
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	m := NewAuthMiddleware(&mockTokenService{})

	c := newTestContext(t, "")
	c.Set(ContextKeyUserRole, entity.RoleAdmin)

	var handlerCalled bool
	err := m.RequireRoles(entity.RoleAdmin)(func(echo.Context) error {
		handlerCalled = true

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, handlerCalled)
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	m := NewAuthMiddleware(&mockTokenService{})

	c := newTestContext(t, "")
	c.Set(ContextKeyUserRole, entity.RoleCustomer)

	err := m.RequireRoles(entity.RoleAdmin)(func(echo.Context) error { return nil })(c)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestRequireRolesRejectsMissingIdentity(t *testing.T) {
	m := NewAuthMiddleware(&mockTokenService{})

	err := m.RequireRoles(entity.RoleAdmin)(func(echo.Context) error { return nil })(newTestContext(t, ""))
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

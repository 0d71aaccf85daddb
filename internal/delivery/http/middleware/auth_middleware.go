// Package middleware contains HTTP middleware for the API surface.
package middleware

import (
	"strings"

	"bookly/internal/domain/authz"
	"bookly/internal/domain/entity"
	domainerrors "bookly/internal/domain/errors"
	"bookly/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys for the identity established by Authenticate.
const (
	ContextKeyUserID    = "userID"
	ContextKeyUserEmail = "userEmail"
	ContextKeyUserRole  = "userRole"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the caller's
// identity on the context. A missing or malformed header and a token that
// fails verification produce the same 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated.WrapMessage("missing authorization header")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrUnauthenticated.WrapMessage("authorization header is not a bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString, service.KindAccess)
		if err != nil {
			return domainerrors.ErrUnauthenticated.WrapMessage("access token rejected")
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserEmail, claims.Email)
		c.Set(ContextKeyUserRole, entity.Role(claims.Role))

		return next(c)
	}
}

// RequireRoles is a middleware factory that checks the authenticated caller's
// role against the allowed set. It must be used AFTER Authenticate.
// An empty set allows any authenticated caller.
func (m *AuthMiddleware) RequireRoles(requiredRoles ...entity.Role) echo.MiddlewareFunc {
	required := entity.Roles(requiredRoles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := GetUserRole(c)
			if !ok {
				return domainerrors.ErrForbidden.WrapMessage("role information missing from context")
			}

			if err := authz.Authorize(role, required); err != nil {
				return err
			}

			return next(c)
		}
	}
}

// GetUserID returns the authenticated user's id set by Authenticate.
func GetUserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(ContextKeyUserID).(int64)

	return id, ok
}

// GetUserEmail returns the authenticated user's email set by Authenticate.
func GetUserEmail(c echo.Context) (string, bool) {
	email, ok := c.Get(ContextKeyUserEmail).(string)

	return email, ok
}

// GetUserRole returns the authenticated user's role set by Authenticate.
func GetUserRole(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(ContextKeyUserRole).(entity.Role)

	return role, ok
}

// Package authz holds the pure role-authorization rule shared by every
// protected operation. Authentication (token verification) happens upstream;
// this package only decides whether an already-verified role is sufficient.
package authz

import (
	"bookly/internal/domain/entity"
	domainerrors "bookly/internal/domain/errors"
)

// Authorize allows the call when the operation declares no required roles,
// or when the caller's role is among them. It performs no I/O and keeps
// no state.
func Authorize(callerRole entity.Role, requiredRoles entity.Roles) error {
	if len(requiredRoles) == 0 {
		return nil
	}

	if requiredRoles.Contains(callerRole) {
		return nil
	}

	return domainerrors.ErrForbidden
}

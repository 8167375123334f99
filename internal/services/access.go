package services

import (
	"context"
	"errors"

	"github.com/m7real/ex-mobile-server/internal/models"
)

// AccessService decides role-gated access. Every check re-reads the user.
type AccessService struct {
	users UserStore
}

// NewAccessService returns an AccessService reading roles from users.
func NewAccessService(users UserStore) *AccessService {
	return &AccessService{users: users}
}

// HasRole reports whether the caller's stored role is role. Unknown users
// hold no role; users without a role are buyers.
func (s *AccessService) HasRole(ctx context.Context, caller Identity, role models.Role) (bool, error) {
	if caller.IsZero() {
		return false, ErrUnauthorized
	}
	user, err := s.users.FindUserByEmail(ctx, caller.Email())
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.HasRole(role), nil
}

// RequireRole returns ErrForbidden unless the caller holds role.
func (s *AccessService) RequireRole(ctx context.Context, caller Identity, role models.Role) error {
	ok, err := s.HasRole(ctx, caller, role)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

package ports

import (
	"context"

	"github.com/egreat/storefront-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at account creation. Role is
// intentionally absent: it is assigned by the service, never by the caller.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Address  string
}

// UpdateProfileInput carries optional profile mutations. Nil means "leave
// unchanged". The password is never part of a profile update.
type UpdateProfileInput struct {
	Name     *string
	Username *string
	Address  *string
}

// AuthService implements registration, login, and account maintenance.
type AuthService interface {
	// Register creates an account and returns a signed token for it. The
	// first account in an empty store receives the admin role.
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	// Login authenticates by email and password. Unknown email and wrong
	// password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// AdminLogin behaves like Login but additionally requires the admin
	// role, failing with domain.ErrForbidden otherwise.
	AdminLogin(ctx context.Context, email, password string) (string, *domain.User, error)
	// UpdateProfile mutates profile fields only; the stored password hash
	// is never touched.
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	// ChangePassword verifies the current secret and re-hashes the new one.
	ChangePassword(ctx context.Context, userID, current, next string) error
}

package ports

import (
	"context"

	"github.com/egreat/storefront-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Uniqueness of username and email is enforced by the store's indexes.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Count returns the total number of accounts; used to grant the first
	// registrant the admin role.
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *domain.User) error
}

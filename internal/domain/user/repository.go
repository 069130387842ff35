package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetByIdentifier looks a user up by email or by the employee code of the
	// linked employee record.
	GetByIdentifier(ctx context.Context, identifier string) (User, error)
}

package user

import "context"

// Repository defines the interface for user persistence operations.
// This interface is implemented by the infrastructure layer.
type Repository interface {
	// Create persists a new user and assigns its ID. A duplicate username
	// yields ErrUserAlreadyExists.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByUsername retrieves a user by their username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Update applies a partial update to the user with the given ID.
	Update(ctx context.Context, id string, update *Update) error

	// UpdatePasswordHash replaces only the stored password hash.
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error

	// Delete removes a user.
	Delete(ctx context.Context, id string) error
}

package domain

import (
	"context"
	"time"
)

// Role is a user's moderation role. Superuser status is carried separately
// on the User because it is orthogonal to the role field.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered user of the platform.
type User struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      Role
	Superuser bool
	// ConfirmationHash is the bcrypt hash of the latest signup confirmation
	// code. Empty when no code is outstanding (never issued or already
	// consumed).
	ConfirmationHash string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	SetConfirmationHash(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, username string) error
}

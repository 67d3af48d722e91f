package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

func (r Role) Valid() bool { return r == RoleBuyer || r == RoleSeller }

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the resolved caller passed explicitly into core operations.
type Identity struct {
	ID    string
	Email string
	Role  Role
}

var (
	ErrEmailTaken   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")

	// ErrUnauthorized covers every credential failure uniformly so callers
	// cannot distinguish a missing token from a bad one.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports an invalid field on a registration request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type UserStore interface {
	Create(ctx context.Context, u User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}

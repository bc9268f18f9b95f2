package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// User is a candidate or administrator account. The ID is the identity
// provider's subject; a row existing at all means the user finished
// onboarding (profile creation).
type User struct {
	ID               string    `json:"id"` // identity provider subject
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	AvatarSrc        *string   `json:"avatar_src,omitempty"`
	IsAdmin          bool      `json:"is_admin"`
	PhoneNumber      *string   `json:"phone_number,omitempty"`
	LinkedinURL      *string   `json:"linkedin_url,omitempty"`
	InterestedRoles  *string   `json:"interested_roles,omitempty"`
	ExplorationPhase *string   `json:"exploration_phase,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	FetchAll(ctx context.Context) ([]User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	Count(ctx context.Context) (int64, error)
}

type AuthUsecase interface {
	// SyncIdentity upserts nothing: it only reports whether a profile row
	// exists for the token's subject so the client can route to onboarding.
	SyncIdentity(ctx context.Context, id string) (*User, bool, error)
	CreateProfile(ctx context.Context, user *User) error
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}

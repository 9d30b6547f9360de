package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrIDRequired       = errors.New("user: id is required")
	ErrEmailRequired    = errors.New("user: email is required")
	ErrNameRequired     = errors.New("user: name is required")
	ErrPasswordRequired = errors.New("user: password is required")
	ErrInvalidRole      = errors.New("user: invalid role")
	ErrEmailAlreadyUsed = errors.New("user: email already used")
	ErrNotFound         = errors.New("user: not found")
)

type ID string

type Role string

const (
	RoleTenant Role = "tenant"
	RoleOwner  Role = "owner"
)

// User is a demo account. Credentials are stored in plain text on purpose:
// this directory backs a mocked login flow, not a real authentication system.
type User struct {
	ID        ID        `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"password"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone"`
	Gender    string    `json:"gender"`
	Location  string    `json:"location"`
	AvatarURL string    `json:"avatar_url"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
	List(ctx context.Context) ([]*User, error)
	ReplaceAll(ctx context.Context, users []*User) error
}

type CreateParams struct {
	ID        ID
	Email     string
	Name      string
	Password  string
	Role      Role
	Phone     string
	Gender    string
	Location  string
	AvatarURL string
	Verified  bool
	CreatedAt time.Time
}

func NewUser(params CreateParams) (*User, error) {
	id := strings.TrimSpace(string(params.ID))
	if id == "" {
		return nil, ErrIDRequired
	}
	email := NormalizeEmail(params.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if params.Password == "" {
		return nil, ErrPasswordRequired
	}
	role, err := normalizeRole(params.Role)
	if err != nil {
		return nil, err
	}

	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}

	return &User{
		ID:        ID(id),
		Email:     email,
		Name:      name,
		Password:  params.Password,
		Role:      role,
		Phone:     strings.TrimSpace(params.Phone),
		Gender:    strings.TrimSpace(params.Gender),
		Location:  strings.TrimSpace(params.Location),
		AvatarURL: strings.TrimSpace(params.AvatarURL),
		Verified:  params.Verified,
		CreatedAt: now.UTC(),
	}, nil
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	normalized, err := normalizeRole(role)
	if err != nil {
		return false
	}
	return u.Role == normalized
}

func normalizeRole(role Role) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(string(role))) {
	case "", "tenant", "user":
		return RoleTenant, nil
	case "owner":
		return RoleOwner, nil
	default:
		return "", ErrInvalidRole
	}
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

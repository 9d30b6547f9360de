package dto

import (
	"time"

	domainuser "roomfinder/internal/domain/user"
)

// UserProfile is the public view of an account. The plaintext credential
// never leaves the process.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Location  string    `json:"location,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse pairs a profile with its bearer token.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

func NewUserProfile(account *domainuser.User) UserProfile {
	return UserProfile{
		ID:        string(account.ID),
		Email:     account.Email,
		Name:      account.Name,
		Role:      string(account.Role),
		Phone:     account.Phone,
		Gender:    account.Gender,
		Location:  account.Location,
		AvatarURL: account.AvatarURL,
		Verified:  account.Verified,
		CreatedAt: account.CreatedAt,
	}
}

func NewAuthResponse(account *domainuser.User, token string) AuthResponse {
	return AuthResponse{Token: token, User: NewUserProfile(account)}
}

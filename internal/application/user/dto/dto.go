package dto

import (
	"time"

	"github.com/procureflow/procureflow/internal/domain/user"
)

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummary is the short profile embedded in ticket and comment views.
type UserSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
}

type TokenResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	TokenType    string        `json:"token_type"`
}

type UserListResponse struct {
	Items []*UserResponse `json:"items"`
	Total int64           `json:"total"`
}

func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		AvatarURL: u.AvatarURL(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}
}

func ToUserResponses(users []*user.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

// ToUserSummary returns a placeholder for users that no longer exist so
// that historical rows still render.
func ToUserSummary(id uint, u *user.User) *UserSummary {
	if u == nil {
		return &UserSummary{ID: id, Name: "Unknown user"}
	}
	return &UserSummary{
		ID:        u.ID(),
		Name:      u.Name(),
		AvatarURL: u.AvatarURL(),
		Role:      u.Role().String(),
	}
}

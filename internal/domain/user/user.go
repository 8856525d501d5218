package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/procureflow/procureflow/internal/shared/biztime"
)

// User is an account that takes part in the procurement workflow.
type User struct {
	id           uint
	name         string
	email        string
	avatarURL    string
	avatarPath   string
	role         Role
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(name, email string, role Role, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address: %s", email)
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := biztime.NowUTC()
	return &User{
		name:         name,
		email:        email,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(
	id uint,
	name, email, avatarURL, avatarPath string,
	role Role,
	passwordHash string,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	return &User{
		id:           id,
		name:         name,
		email:        email,
		avatarURL:    avatarURL,
		avatarPath:   avatarPath,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) AvatarURL() string    { return u.avatarURL }
func (u *User) AvatarPath() string   { return u.avatarPath }
func (u *User) Role() Role           { return u.role }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.updatedAt = biztime.NowUTC()
	return nil
}

// SetAvatar records a new avatar location and returns the previous object
// path so the caller can remove it from storage.
func (u *User) SetAvatar(url, path string) (previousPath string) {
	previousPath = u.avatarPath
	u.avatarURL = url
	u.avatarPath = path
	u.updatedAt = biztime.NowUTC()
	return previousPath
}

// Package seed loads initial accounts from a YAML file.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

// UserSeed is one entry of the users file.
type UserSeed struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type UsersFile struct {
	Users []UserSeed `yaml:"users"`
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Result counts what a seed run did.
type Result struct {
	Created int
	Skipped int
}

type UserSeeder struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewUserSeeder(userRepo user.Repository, hasher PasswordHasher, log logger.Interface) *UserSeeder {
	return &UserSeeder{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   log,
	}
}

func LoadUsersFile(path string) (*UsersFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseUsers(raw)
}

func ParseUsers(raw []byte) (*UsersFile, error) {
	var f UsersFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("seed file has no users")
	}
	return &f, nil
}

// Seed creates every user whose email is not taken yet. Existing accounts
// are left untouched.
func (s *UserSeeder) Seed(ctx context.Context, f *UsersFile) (*Result, error) {
	res := &Result{}
	for i, entry := range f.Users {
		role, err := user.ParseRole(entry.Role)
		if err != nil {
			return res, fmt.Errorf("users[%d]: %w", i, err)
		}
		if entry.Password == "" {
			return res, fmt.Errorf("users[%d]: password is required", i)
		}

		hash, err := s.hasher.Hash(entry.Password)
		if err != nil {
			return res, fmt.Errorf("users[%d]: %w", i, err)
		}
		u, err := user.NewUser(entry.Name, entry.Email, role, hash)
		if err != nil {
			return res, fmt.Errorf("users[%d]: %w", i, err)
		}

		if err := s.userRepo.Create(ctx, u); err != nil {
			if errors.IsConflictError(err) {
				s.logger.Infow("user already exists, skipping", "email", u.Email())
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("users[%d]: %w", i, err)
		}
		s.logger.Infow("user seeded", "user_id", u.ID(), "email", u.Email(), "role", role)
		res.Created++
	}
	return res, nil
}

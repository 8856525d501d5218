package usecases

import (
	"context"
	"io"

	"github.com/procureflow/procureflow/internal/application/user/dto"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/infrastructure/auth"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type TokenService interface {
	Generate(userID uint, role user.Role) (*auth.TokenPair, error)
	Verify(token string) (*auth.Claims, error)
	Refresh(refreshToken string, currentRole user.Role) (*auth.TokenPair, error)
}

type ObjectStore interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*dto.TokenResponse, error)
}

type RefreshTokenExecutor interface {
	Execute(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
}

type GetCurrentUserExecutor interface {
	Execute(ctx context.Context, userID uint) (*dto.UserResponse, error)
}

type ListUsersExecutor interface {
	Execute(ctx context.Context, query ListUsersQuery) (*dto.UserListResponse, error)
}

type CreateUserExecutor interface {
	Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserResponse, error)
}

type UpdateUserRoleExecutor interface {
	Execute(ctx context.Context, cmd UpdateUserRoleCommand) (*dto.UserResponse, error)
}

type UploadAvatarExecutor interface {
	Execute(ctx context.Context, cmd UploadAvatarCommand) (*dto.UserResponse, error)
}

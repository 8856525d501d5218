package usecases

import (
	"context"
	"strings"

	"github.com/procureflow/procureflow/internal/application/user/dto"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

const bearerTokenType = "Bearer"

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo   user.Repository
	hasher     PasswordHasher
	jwtService TokenService
	logger     logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	jwtService TokenService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("invalid email or password")
		}
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, err
	}

	if err := uc.hasher.Verify(cmd.Password, existing.PasswordHash()); err != nil {
		uc.logger.Warnw("login failed: wrong password", "user_id", existing.ID())
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	tokens, err := uc.jwtService.Generate(existing.ID(), existing.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", existing.ID(), "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	uc.logger.Infow("user logged in successfully", "user_id", existing.ID())

	return &dto.TokenResponse{
		User:         dto.ToUserResponse(existing),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    bearerTokenType,
	}, nil
}

package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/user/dto"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type RefreshTokenUseCase struct {
	userRepo   user.Repository
	jwtService TokenService
	logger     logger.Interface
}

func NewRefreshTokenUseCase(userRepo user.Repository, jwtService TokenService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Execute issues a new pair carrying the user's current role.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, errors.NewValidationError("refresh token is required")
	}

	claims, err := uc.jwtService.Verify(refreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	existing, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("user no longer exists")
		}
		return nil, err
	}

	tokens, err := uc.jwtService.Refresh(refreshToken, existing.Role())
	if err != nil {
		uc.logger.Warnw("refresh rejected", "user_id", existing.ID(), "error", err)
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	return &dto.TokenResponse{
		User:         dto.ToUserResponse(existing),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    bearerTokenType,
	}, nil
}

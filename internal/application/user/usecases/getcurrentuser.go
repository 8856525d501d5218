package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/user/dto"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type GetCurrentUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetCurrentUserUseCase(userRepo user.Repository, logger logger.Interface) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Warnw("failed to load current user", "user_id", userID, "error", err)
		return nil, err
	}
	return dto.ToUserResponse(u), nil
}

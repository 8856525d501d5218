package usecases

import (
	"context"
	"io"
	"strings"

	"github.com/procureflow/procureflow/internal/application/user/dto"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/infrastructure/storage"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type UploadAvatarCommand struct {
	UserID      uint
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

type UploadAvatarUseCase struct {
	userRepo    user.Repository
	store       ObjectStore
	maxFileSize int64
	logger      logger.Interface
}

func NewUploadAvatarUseCase(userRepo user.Repository, store ObjectStore, maxFileSize int64, logger logger.Interface) *UploadAvatarUseCase {
	return &UploadAvatarUseCase{
		userRepo:    userRepo,
		store:       store,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

func (uc *UploadAvatarUseCase) Execute(ctx context.Context, cmd UploadAvatarCommand) (*dto.UserResponse, error) {
	uc.logger.Infow("executing upload avatar use case", "user_id", cmd.UserID, "size", cmd.Size)

	if cmd.File == nil || cmd.Size <= 0 {
		return nil, errors.NewValidationError("avatar file is required")
	}
	if uc.maxFileSize > 0 && cmd.Size > uc.maxFileSize {
		return nil, errors.NewValidationError("avatar file is too large")
	}
	if !strings.HasPrefix(cmd.ContentType, "image/") {
		return nil, errors.NewValidationError("avatar must be an image")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	path, err := storage.AvatarObjectPath(u.ID(), cmd.FileName)
	if err != nil {
		return nil, errors.NewInternalError("failed to name avatar object")
	}
	url, err := uc.store.Upload(ctx, path, cmd.File, cmd.Size, cmd.ContentType)
	if err != nil {
		uc.logger.Errorw("failed to upload avatar", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to upload avatar")
	}

	previous := u.SetAvatar(url, path)
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save avatar, removing upload", "user_id", u.ID(), "error", err)
		if rmErr := uc.store.Remove(ctx, path); rmErr != nil {
			uc.logger.Warnw("failed to remove orphaned avatar", "path", path, "error", rmErr)
		}
		return nil, err
	}

	if previous != "" && previous != path {
		if err := uc.store.Remove(ctx, previous); err != nil {
			uc.logger.Warnw("failed to remove previous avatar", "path", previous, "error", err)
		}
	}

	uc.logger.Infow("avatar updated", "user_id", u.ID())
	return dto.ToUserResponse(u), nil
}

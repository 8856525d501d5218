package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/user/dto"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type UpdateUserRoleCommand struct {
	ActorID   uint
	ActorRole user.Role
	UserID    uint
	Role      string
}

type UpdateUserRoleUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateUserRoleUseCase(userRepo user.Repository, logger logger.Interface) *UpdateUserRoleUseCase {
	return &UpdateUserRoleUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *UpdateUserRoleUseCase) Execute(ctx context.Context, cmd UpdateUserRoleCommand) (*dto.UserResponse, error) {
	uc.logger.Infow("executing update user role use case", "user_id", cmd.UserID, "role", cmd.Role, "actor_id", cmd.ActorID)

	if !cmd.ActorRole.IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators can change roles")
	}
	role, err := user.ParseRole(cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.ActorID == cmd.UserID && role != user.RoleAdmin {
		return nil, errors.NewBadRequestError("administrators cannot demote themselves")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := u.ChangeRole(role); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user role", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("user role updated", "user_id", cmd.UserID, "role", role)
	return dto.ToUserResponse(u), nil
}

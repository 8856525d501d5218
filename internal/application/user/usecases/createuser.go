package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/user/dto"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

const minPasswordLength = 8

type CreateUserCommand struct {
	ActorRole user.Role
	Name      string
	Email     string
	Password  string
	Role      string
}

type CreateUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewCreateUserUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserResponse, error) {
	uc.logger.Infow("executing create user use case", "email", cmd.Email, "role", cmd.Role)

	if !cmd.ActorRole.IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators can create users")
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}
	role, err := user.ParseRole(cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to hash password")
	}

	u, err := user.NewUser(cmd.Name, cmd.Email, role, hash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		uc.logger.Errorw("failed to create user", "email", u.Email(), "error", err)
		return nil, err
	}

	uc.logger.Infow("user created successfully", "user_id", u.ID(), "role", role)
	return dto.ToUserResponse(u), nil
}

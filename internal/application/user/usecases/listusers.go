package usecases

import (
	"context"
	"fmt"

	"github.com/procureflow/procureflow/internal/application/user/dto"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type ListUsersQuery struct {
	Role     string
	Search   string
	Page     int
	PageSize int
}

// ListUsersUseCase backs the reviewer picker; with no page size it returns
// every match.
type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*dto.UserListResponse, error) {
	filter := user.Filter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Role != "" {
		role, err := user.ParseRole(query.Role)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Role = &role
	}

	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &dto.UserListResponse{
		Items: dto.ToUserResponses(users),
		Total: total,
	}, nil
}

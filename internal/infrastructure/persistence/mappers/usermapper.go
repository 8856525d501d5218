package mappers

import (
	"fmt"

	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
)

type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}
	role, err := user.ParseRole(model.Role)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", model.ID, err)
	}
	return user.ReconstructUser(
		model.ID,
		model.Name,
		model.Email,
		model.AvatarURL,
		model.AvatarPath,
		role,
		model.PasswordHash,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           entity.ID(),
		Name:         entity.Name(),
		Email:        entity.Email(),
		AvatarURL:    entity.AvatarURL(),
		AvatarPath:   entity.AvatarPath(),
		Role:         entity.Role().String(),
		PasswordHash: entity.PasswordHash(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *UserMapperImpl) ToEntities(list []*models.UserModel) ([]*user.User, error) {
	out := make([]*user.User, 0, len(list))
	for _, model := range list {
		u, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

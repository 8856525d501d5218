package user

import "context"

type Filter struct {
	Role   *Role
	Search string
	Page   int
	// PageSize of zero returns every match.
	PageSize int
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByIDs returns the users that exist; missing ids are skipped.
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	ListByRole(ctx context.Context, role Role) ([]*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int64, error)
}

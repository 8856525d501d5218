package usecases

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

type mockUserRepository struct {
	CreateFunc     func(ctx context.Context, u *user.User) error
	UpdateFunc     func(ctx context.Context, u *user.User) error
	GetByIDFunc    func(ctx context.Context, id uint) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	ListFunc       func(ctx context.Context, filter user.Filter) ([]*user.User, int64, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return u.SetID(1)
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) GetByIDs(context.Context, []uint) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) ListByRole(context.Context, user.Role) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.Filter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return errors.NewUnauthorizedError("mismatch")
	}
	return nil
}

type memoryObjectStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	removed   []string
	uploadErr error
}

func newMemoryObjectStore() *memoryObjectStore {
	return &memoryObjectStore{objects: make(map[string][]byte)}
}

func (s *memoryObjectStore) Upload(_ context.Context, path string, r io.Reader, _ int64, _ string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	return "http://files.test/" + path, nil
}

func (s *memoryObjectStore) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	s.removed = append(s.removed, path)
	return nil
}

func storedUser(id uint, email string, role user.Role) *user.User {
	u, err := user.ReconstructUser(id, "User", email, "", "", role, "hashed:secret123", time.Now(), time.Now())
	if err != nil {
		panic(err)
	}
	return u
}

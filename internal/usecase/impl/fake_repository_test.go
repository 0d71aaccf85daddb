package impl

import (
	"context"
	"sort"
	"sync"
	"time"

	"bookly/internal/domain/entity"
	domainerrors "bookly/internal/domain/errors"
	"bookly/internal/domain/repository"
)

// memoryUserRepository is an in-memory repository.UserRepository used to
// exercise the auth flows without a database. Its mutex makes Create atomic,
// mirroring how the unique constraint settles concurrent registrations.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		nextID: 1,
		users:  make(map[int64]*entity.User),
	}
}

func (m *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (m *memoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (m *memoryUserRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (m *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
		}
	}

	now := time.Now()
	user.ID = m.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	m.nextID++
	m.users[user.ID] = cloneUser(user)

	return nil
}

func (m *memoryUserRepository) UpdatePassword(_ context.Context, id int64, passwordHash string, saltRounds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.PasswordHash = passwordHash
	user.PasswordSaltRounds = saltRounds
	user.UpdatedAt = time.Now()

	return nil
}

func (m *memoryUserRepository) List(_ context.Context) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*entity.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, cloneUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })

	return users, nil
}

func cloneUser(user *entity.User) *entity.User {
	cloned := *user

	return &cloned
}

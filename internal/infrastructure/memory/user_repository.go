package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
)

type UserRepositoryMemory struct {
	mu    sync.RWMutex
	users map[string]*entities.User
}

func NewUserRepositoryMemory() *UserRepositoryMemory {
	return &UserRepositoryMemory{users: make(map[string]*entities.User)}
}

func (r *UserRepositoryMemory) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserID]; ok {
		return repositories.ErrUserAlreadyExists
	}
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.users[user.UserID] = copyUser(user)
	return nil
}

func (r *UserRepositoryMemory) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (r *UserRepositoryMemory) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return copyUser(user), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *UserRepositoryMemory) Update(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserID]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.UserID] = copyUser(user)
	return nil
}

func (r *UserRepositoryMemory) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *UserRepositoryMemory) List(ctx context.Context) ([]*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entities.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, copyUser(user))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func copyUser(user *entities.User) *entities.User {
	clone := *user
	if user.OTPExpires != nil {
		expires := *user.OTPExpires
		clone.OTPExpires = &expires
	}
	return &clone
}

package repositories

import (
	"context"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, userID string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context) ([]*entities.User, error)
}

var (
	ErrUserNotFound      = &RepositoryError{"user not found"}
	ErrUserAlreadyExists = &RepositoryError{"user already exists"}
)

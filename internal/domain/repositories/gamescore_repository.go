package repositories

import (
	"context"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
)

type GameScoreRepository interface {
	GetByUserAndGame(ctx context.Context, userID, gameName string) (*entities.GameScore, error)
	Save(ctx context.Context, score *entities.GameScore) error
	ListByUser(ctx context.Context, userID string) ([]*entities.GameScore, error)
	TopByGame(ctx context.Context, gameName string, limit int) ([]*entities.GameScore, error)
}

var ErrScoreNotFound = &RepositoryError{"game score not found"}

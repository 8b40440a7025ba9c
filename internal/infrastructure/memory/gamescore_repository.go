package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
)

type GameScoreRepositoryMemory struct {
	mu     sync.RWMutex
	scores map[string]*entities.GameScore
}

func NewGameScoreRepositoryMemory() *GameScoreRepositoryMemory {
	return &GameScoreRepositoryMemory{scores: make(map[string]*entities.GameScore)}
}

func scoreKey(userID, gameName string) string {
	return userID + "|" + gameName
}

func (r *GameScoreRepositoryMemory) GetByUserAndGame(ctx context.Context, userID, gameName string) (*entities.GameScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	score, ok := r.scores[scoreKey(userID, gameName)]
	if !ok {
		return nil, repositories.ErrScoreNotFound
	}
	clone := *score
	return &clone, nil
}

func (r *GameScoreRepositoryMemory) Save(ctx context.Context, score *entities.GameScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *score
	r.scores[scoreKey(score.UserID, score.GameName)] = &clone
	return nil
}

func (r *GameScoreRepositoryMemory) ListByUser(ctx context.Context, userID string) ([]*entities.GameScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var scores []*entities.GameScore
	for _, score := range r.scores {
		if score.UserID == userID {
			clone := *score
			scores = append(scores, &clone)
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].UpdatedAt.After(scores[j].UpdatedAt)
	})
	return scores, nil
}

func (r *GameScoreRepositoryMemory) TopByGame(ctx context.Context, gameName string, limit int) ([]*entities.GameScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var scores []*entities.GameScore
	for _, score := range r.scores {
		if score.GameName == gameName {
			clone := *score
			scores = append(scores, &clone)
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].HighScore > scores[j].HighScore
	})
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

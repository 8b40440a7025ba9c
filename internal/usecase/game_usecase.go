package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
)

var ErrInvalidGame = errors.New("game name is required")

type LeaderboardEntry struct {
	UserID string `json:"user"`
	Score  int    `json:"score"`
}

// Leaderboard is a fast ranking store; the document store remains the source
// of truth and serves as fallback.
type Leaderboard interface {
	RecordScore(ctx context.Context, gameName, userID string, score int) error
	Top(ctx context.Context, gameName string, limit int) ([]LeaderboardEntry, error)
}

type GameUseCase struct {
	scoreRepo repositories.GameScoreRepository
	board     Leaderboard
	logger    *logger.Logger
}

func NewGameUseCase(scoreRepo repositories.GameScoreRepository, board Leaderboard, log *logger.Logger) *GameUseCase {
	return &GameUseCase{scoreRepo: scoreRepo, board: board, logger: log}
}

// UpdateScore records a run. High score and level only move up; play time
// accumulates.
func (uc *GameUseCase) UpdateScore(ctx context.Context, user *entities.User, gameName string, level, score, playTime int) (*entities.GameScore, error) {
	if user == nil || user.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if gameName == "" {
		return nil, ErrInvalidGame
	}
	if score < 0 || playTime < 0 {
		return nil, fmt.Errorf("%w: score and play time must be non-negative", ErrInvalidItem)
	}

	entry, err := uc.scoreRepo.GetByUserAndGame(ctx, user.UserID, gameName)
	if errors.Is(err, repositories.ErrScoreNotFound) {
		entry = &entities.GameScore{
			UserID:   user.UserID,
			UserName: user.Name,
			GameName: gameName,
			Level:    1,
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load game score: %w", err)
	}

	entry.Score = score
	if score > entry.HighScore {
		entry.HighScore = score
	}
	if level > entry.Level {
		entry.Level = level
	}
	entry.PlayTime += playTime
	entry.UserName = user.Name
	entry.UpdatedAt = time.Now()

	if err := uc.scoreRepo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save game score: %w", err)
	}

	if uc.board != nil {
		if err := uc.board.RecordScore(ctx, gameName, user.UserID, entry.HighScore); err != nil {
			uc.logger.Warn("failed to record leaderboard score", "game", gameName, "error", err)
		}
	}
	return entry, nil
}

// TopScores serves the leaderboard from the ranking store, falling back to
// the document store when it is empty or unavailable.
func (uc *GameUseCase) TopScores(ctx context.Context, gameName string, limit int) ([]LeaderboardEntry, error) {
	if gameName == "" {
		return nil, ErrInvalidGame
	}
	if limit <= 0 {
		limit = 10
	}

	if uc.board != nil {
		entries, err := uc.board.Top(ctx, gameName, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			uc.logger.Warn("leaderboard unavailable, falling back to store", "game", gameName, "error", err)
		}
	}

	scores, err := uc.scoreRepo.TopByGame(ctx, gameName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	entries := make([]LeaderboardEntry, 0, len(scores))
	for _, s := range scores {
		entries = append(entries, LeaderboardEntry{UserID: s.UserID, Score: s.HighScore})
	}
	return entries, nil
}

func (uc *GameUseCase) UserScores(ctx context.Context, userID string) ([]*entities.GameScore, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return uc.scoreRepo.ListByUser(ctx, userID)
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/memory"
)

// fakeBoard is an in-process Leaderboard with controllable failures.
type fakeBoard struct {
	scores map[string]map[string]int
	fail   bool
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{scores: make(map[string]map[string]int)}
}

func (b *fakeBoard) RecordScore(ctx context.Context, gameName, userID string, score int) error {
	if b.fail {
		return errors.New("board down")
	}
	if b.scores[gameName] == nil {
		b.scores[gameName] = make(map[string]int)
	}
	if score > b.scores[gameName][userID] {
		b.scores[gameName][userID] = score
	}
	return nil
}

func (b *fakeBoard) Top(ctx context.Context, gameName string, limit int) ([]LeaderboardEntry, error) {
	if b.fail {
		return nil, errors.New("board down")
	}
	var entries []LeaderboardEntry
	for userID, score := range b.scores[gameName] {
		entries = append(entries, LeaderboardEntry{UserID: userID, Score: score})
	}
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Score > entries[i].Score {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}
	if limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func TestUpdateScore_HighScoreOnlyClimbs(t *testing.T) {
	repo := memory.NewGameScoreRepositoryMemory()
	uc := NewGameUseCase(repo, newFakeBoard(), logger.NewLogger())
	ctx := context.Background()
	user := testUser()

	first, err := uc.UpdateScore(ctx, user, "trailrush", 2, 500, 60)
	require.NoError(t, err)
	assert.Equal(t, 500, first.HighScore)
	assert.Equal(t, 2, first.Level)
	assert.Equal(t, 60, first.PlayTime)

	second, err := uc.UpdateScore(ctx, user, "trailrush", 1, 300, 40)
	require.NoError(t, err)
	assert.Equal(t, 300, second.Score)
	assert.Equal(t, 500, second.HighScore, "high score never drops")
	assert.Equal(t, 2, second.Level, "level never drops")
	assert.Equal(t, 100, second.PlayTime, "play time accumulates")
}

func TestUpdateScore_Validation(t *testing.T) {
	uc := NewGameUseCase(memory.NewGameScoreRepositoryMemory(), nil, logger.NewLogger())
	ctx := context.Background()

	_, err := uc.UpdateScore(ctx, nil, "trailrush", 1, 10, 1)
	assert.ErrorIs(t, err, ErrInvalidUserID)

	_, err = uc.UpdateScore(ctx, testUser(), "", 1, 10, 1)
	assert.ErrorIs(t, err, ErrInvalidGame)

	_, err = uc.UpdateScore(ctx, testUser(), "trailrush", 1, -1, 1)
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestUpdateScore_BoardFailureIsNotFatal(t *testing.T) {
	repo := memory.NewGameScoreRepositoryMemory()
	board := newFakeBoard()
	board.fail = true
	uc := NewGameUseCase(repo, board, logger.NewLogger())

	entry, err := uc.UpdateScore(context.Background(), testUser(), "trailrush", 1, 100, 10)
	require.NoError(t, err)
	assert.Equal(t, 100, entry.HighScore)
}

func TestTopScores_FallsBackToStore(t *testing.T) {
	repo := memory.NewGameScoreRepositoryMemory()
	board := newFakeBoard()
	uc := NewGameUseCase(repo, board, logger.NewLogger())
	ctx := context.Background()

	_, err := uc.UpdateScore(ctx, testUser(), "trailrush", 1, 700, 10)
	require.NoError(t, err)

	entries, err := uc.TopScores(ctx, "trailrush", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 700, entries[0].Score)

	// board down: the document store still answers
	board.fail = true
	entries, err = uc.TopScores(ctx, "trailrush", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "user123", entries[0].UserID)
}

func TestUserScores(t *testing.T) {
	repo := memory.NewGameScoreRepositoryMemory()
	uc := NewGameUseCase(repo, nil, logger.NewLogger())
	ctx := context.Background()

	_, err := uc.UpdateScore(ctx, testUser(), "trailrush", 1, 100, 10)
	require.NoError(t, err)
	_, err = uc.UpdateScore(ctx, testUser(), "hillclimb", 1, 50, 5)
	require.NoError(t, err)

	scores, err := uc.UserScores(ctx, "user123")
	require.NoError(t, err)
	assert.Len(t, scores, 2)

	_, err = uc.UserScores(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
)

type GameScoreRepositoryMongo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewGameScoreRepositoryMongo(db *mongo.Database, log *logger.Logger) (*GameScoreRepositoryMongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("game_scores")
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "game_name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "game_name", Value: 1}, {Key: "high_score", Value: -1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game score indexes: %w", err)
	}

	return &GameScoreRepositoryMongo{collection: collection, logger: log}, nil
}

func (r *GameScoreRepositoryMongo) GetByUserAndGame(ctx context.Context, userID, gameName string) (*entities.GameScore, error) {
	var doc GameScoreDocument
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "game_name": gameName}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repositories.ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to find game score: %w", err)
	}
	return toGameScoreEntity(&doc), nil
}

func (r *GameScoreRepositoryMongo) Save(ctx context.Context, score *entities.GameScore) error {
	doc := toGameScoreDocument(score)
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"user_id": score.UserID, "game_name": score.GameName},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save game score: %w", err)
	}
	return nil
}

func (r *GameScoreRepositoryMongo) ListByUser(ctx context.Context, userID string) ([]*entities.GameScore, error) {
	return r.list(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
}

func (r *GameScoreRepositoryMongo) TopByGame(ctx context.Context, gameName string, limit int) ([]*entities.GameScore, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "high_score", Value: -1}}).
		SetLimit(int64(limit))
	return r.list(ctx, bson.M{"game_name": gameName}, opts)
}

func (r *GameScoreRepositoryMongo) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entities.GameScore, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list game scores: %w", err)
	}
	defer cursor.Close(ctx)

	var scores []*entities.GameScore
	for cursor.Next(ctx) {
		var doc GameScoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode game score: %w", err)
		}
		scores = append(scores, toGameScoreEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("game score cursor failed: %w", err)
	}
	return scores, nil
}

func toGameScoreDocument(score *entities.GameScore) *GameScoreDocument {
	return &GameScoreDocument{
		UserID:    score.UserID,
		UserName:  score.UserName,
		GameName:  score.GameName,
		Level:     score.Level,
		Score:     score.Score,
		HighScore: score.HighScore,
		PlayTime:  score.PlayTime,
		UpdatedAt: score.UpdatedAt,
	}
}

func toGameScoreEntity(doc *GameScoreDocument) *entities.GameScore {
	return &entities.GameScore{
		UserID:    doc.UserID,
		UserName:  doc.UserName,
		GameName:  doc.GameName,
		Level:     doc.Level,
		Score:     doc.Score,
		HighScore: doc.HighScore,
		PlayTime:  doc.PlayTime,
		UpdatedAt: doc.UpdatedAt,
	}
}

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

type ReviewRepositoryMongo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewReviewRepositoryMongo(db *mongo.Database, log *logger.Logger) (*ReviewRepositoryMongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("reviews")
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "review_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create review indexes: %w", err)
	}

	return &ReviewRepositoryMongo{collection: collection, logger: log}, nil
}

func (r *ReviewRepositoryMongo) Create(ctx context.Context, review *entities.Review) error {
	_, err := r.collection.InsertOne(ctx, toReviewDocument(review))
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepositoryMongo) GetByID(ctx context.Context, reviewID string) (*entities.Review, error) {
	var doc ReviewDocument
	err := r.collection.FindOne(ctx, bson.M{"review_id": reviewID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repositories.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return toReviewEntity(&doc), nil
}

func (r *ReviewRepositoryMongo) ListByProduct(ctx context.Context, productID string) ([]*entities.Review, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{"product_id": productID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*entities.Review
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, toReviewEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("review cursor failed: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepositoryMongo) Delete(ctx context.Context, reviewID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"review_id": reviewID})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return repositories.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryMongo) AggregateRating(ctx context.Context, productID string) (float64, int, error) {
	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product_id": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$product_id",
			"average_rating": bson.M{"$avg": "$rating"},
			"num_reviews":    bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		AverageRating float64 `bson:"average_rating"`
		NumReviews    int     `bson:"num_reviews"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, 0, fmt.Errorf("failed to decode rating aggregate: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, 0, fmt.Errorf("rating aggregate cursor failed: %w", err)
	}
	return result.AverageRating, result.NumReviews, nil
}

func toReviewDocument(review *entities.Review) *ReviewDocument {
	return &ReviewDocument{
		ReviewID:  review.ReviewID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Name:      review.Name,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

func toReviewEntity(doc *ReviewDocument) *entities.Review {
	return &entities.Review{
		ReviewID:  doc.ReviewID,
		ProductID: doc.ProductID,
		UserID:    doc.UserID,
		Name:      doc.Name,
		Rating:    doc.Rating,
		Comment:   doc.Comment,
		CreatedAt: doc.CreatedAt,
	}
}

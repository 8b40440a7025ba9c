package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
)

type UserRepositoryMongo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewUserRepositoryMongo(db *mongo.Database, log *logger.Logger) (*UserRepositoryMongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("users")
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user indexes: %w", err)
	}

	return &UserRepositoryMongo{collection: collection, logger: log}, nil
}

func (r *UserRepositoryMongo) Create(ctx context.Context, user *entities.User) error {
	_, err := r.collection.InsertOne(ctx, toUserDocument(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepositoryMongo) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *UserRepositoryMongo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *UserRepositoryMongo) findOne(ctx context.Context, filter bson.M) (*entities.User, error) {
	var doc UserDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repositories.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return toUserEntity(&doc), nil
}

func (r *UserRepositoryMongo) Update(ctx context.Context, user *entities.User) error {
	doc := toUserDocument(user)
	result, err := r.collection.ReplaceOne(ctx, bson.M{"user_id": user.UserID}, doc)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryMongo) Delete(ctx context.Context, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return repositories.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryMongo) List(ctx context.Context) ([]*entities.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*entities.User
	for cursor.Next(ctx) {
		var doc UserDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, toUserEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("user cursor failed: %w", err)
	}
	return users, nil
}

func toUserDocument(user *entities.User) *UserDocument {
	return &UserDocument{
		UserID:       user.UserID,
		Name:         user.Name,
		Email:        strings.ToLower(user.Email),
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		Avatar:       user.Avatar,
		GoogleID:     user.GoogleID,
		OTPHash:      user.OTPHash,
		OTPExpires:   user.OTPExpires,
		OTPAttempts:  user.OTPAttempts,
		IsVerified:   user.IsVerified,
		IsBlocked:    user.IsBlocked,
		IsAdmin:      user.IsAdmin,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toUserEntity(doc *UserDocument) *entities.User {
	return &entities.User{
		UserID:       doc.UserID,
		Name:         doc.Name,
		Email:        doc.Email,
		Phone:        doc.Phone,
		PasswordHash: doc.PasswordHash,
		Avatar:       doc.Avatar,
		GoogleID:     doc.GoogleID,
		OTPHash:      doc.OTPHash,
		OTPExpires:   doc.OTPExpires,
		OTPAttempts:  doc.OTPAttempts,
		IsVerified:   doc.IsVerified,
		IsBlocked:    doc.IsBlocked,
		IsAdmin:      doc.IsAdmin,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

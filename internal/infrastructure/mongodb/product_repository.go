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

type ProductRepositoryMongo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewProductRepositoryMongo(db *mongo.Database, log *logger.Logger) (*ProductRepositoryMongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("products")
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product index: %w", err)
	}

	return &ProductRepositoryMongo{collection: collection, logger: log}, nil
}

func (r *ProductRepositoryMongo) Create(ctx context.Context, product *entities.Product) error {
	_, err := r.collection.InsertOne(ctx, toProductDocument(product))
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *ProductRepositoryMongo) GetByID(ctx context.Context, productID string) (*entities.Product, error) {
	var doc ProductDocument
	err := r.collection.FindOne(ctx, bson.M{"product_id": productID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repositories.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return toProductEntity(&doc), nil
}

func (r *ProductRepositoryMongo) List(ctx context.Context) ([]*entities.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*entities.Product
	for cursor.Next(ctx) {
		var doc ProductDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, toProductEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("product cursor failed: %w", err)
	}
	return products, nil
}

func (r *ProductRepositoryMongo) Update(ctx context.Context, product *entities.Product) error {
	doc := toProductDocument(product)
	result, err := r.collection.ReplaceOne(ctx, bson.M{"product_id": product.ProductID}, doc)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepositoryMongo) Delete(ctx context.Context, productID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"product_id": productID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return repositories.ErrProductNotFound
	}
	return nil
}

// DecrementStock is a single conditional update: the filter requires enough
// stock, so concurrent orders can never push it below zero.
func (r *ProductRepositoryMongo) DecrementStock(ctx context.Context, productID string, qty int) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"product_id": productID, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if result.MatchedCount == 0 {
		if exists, eerr := r.exists(ctx, productID); eerr == nil && !exists {
			return repositories.ErrProductNotFound
		}
		return repositories.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepositoryMongo) UpdateRating(ctx context.Context, productID string, rating float64, numReviews int) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"product_id": productID},
		bson.M{"$set": bson.M{"rating": rating, "num_reviews": numReviews}},
	)
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepositoryMongo) exists(ctx context.Context, productID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"product_id": productID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func toProductDocument(product *entities.Product) *ProductDocument {
	return &ProductDocument{
		ProductID:     product.ProductID,
		Name:          product.Name,
		Brand:         product.Brand,
		ModelNumber:   product.ModelNumber,
		Type:          product.Type,
		Description:   product.Description,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		Category:      product.Category,
		WheelSize:     product.WheelSize,
		FrameMaterial: product.FrameMaterial,
		BrakeType:     product.BrakeType,
		Gears:         product.Gears,
		Stock:         product.Stock,
		ImageURLs:     product.ImageURLs,
		VideoURL:      product.VideoURL,
		Rating:        product.Rating,
		NumReviews:    product.NumReviews,
		IsFeatured:    product.IsFeatured,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func toProductEntity(doc *ProductDocument) *entities.Product {
	return &entities.Product{
		ProductID:     doc.ProductID,
		Name:          doc.Name,
		Brand:         doc.Brand,
		ModelNumber:   doc.ModelNumber,
		Type:          doc.Type,
		Description:   doc.Description,
		Price:         doc.Price,
		DiscountPrice: doc.DiscountPrice,
		Category:      doc.Category,
		WheelSize:     doc.WheelSize,
		FrameMaterial: doc.FrameMaterial,
		BrakeType:     doc.BrakeType,
		Gears:         doc.Gears,
		Stock:         doc.Stock,
		ImageURLs:     doc.ImageURLs,
		VideoURL:      doc.VideoURL,
		Rating:        doc.Rating,
		NumReviews:    doc.NumReviews,
		IsFeatured:    doc.IsFeatured,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

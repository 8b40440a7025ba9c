package repositories

import (
	"context"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error
	GetByID(ctx context.Context, reviewID string) (*entities.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*entities.Review, error)
	Delete(ctx context.Context, reviewID string) error

	// AggregateRating returns the average rating and review count for a
	// product; count 0 means no reviews.
	AggregateRating(ctx context.Context, productID string) (float64, int, error)
}

var ErrReviewNotFound = &RepositoryError{"review not found"}

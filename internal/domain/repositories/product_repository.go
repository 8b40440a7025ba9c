package repositories

import (
	"context"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, productID string) (*entities.Product, error)
	List(ctx context.Context) ([]*entities.Product, error)
	Update(ctx context.Context, product *entities.Product) error
	Delete(ctx context.Context, productID string) error

	// DecrementStock applies a conditional stock decrement: it succeeds only
	// when the stored stock is at least qty, otherwise ErrInsufficientStock.
	DecrementStock(ctx context.Context, productID string, qty int) error

	UpdateRating(ctx context.Context, productID string, rating float64, numReviews int) error
}

var (
	ErrProductNotFound   = &RepositoryError{"product not found"}
	ErrInsufficientStock = &RepositoryError{"insufficient stock"}
)

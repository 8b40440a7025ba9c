package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
)

type ReviewUseCase struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
	logger      *logger.Logger
}

func NewReviewUseCase(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository, log *logger.Logger) *ReviewUseCase {
	return &ReviewUseCase{reviewRepo: reviewRepo, productRepo: productRepo, logger: log}
}

// AddReview stores the review and refreshes the product's rating aggregate.
func (uc *ReviewUseCase) AddReview(ctx context.Context, user *entities.User, productID string, rating int, comment string) (*entities.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if comment == "" {
		return nil, fmt.Errorf("%w: comment required", ErrInvalidItem)
	}
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	review := &entities.Review{
		ReviewID:  uuid.New().String(),
		ProductID: productID,
		Name:      "Anonymous",
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if user != nil {
		review.UserID = user.UserID
		review.Name = user.Name
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	uc.refreshRating(ctx, productID)
	return review, nil
}

func (uc *ReviewUseCase) ReviewsByProduct(ctx context.Context, productID string) ([]*entities.Review, error) {
	return uc.reviewRepo.ListByProduct(ctx, productID)
}

func (uc *ReviewUseCase) DeleteReview(ctx context.Context, reviewID string) error {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := uc.reviewRepo.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	uc.refreshRating(ctx, review.ProductID)
	return nil
}

// refreshRating recomputes the product aggregate; a failure is logged, the
// review write itself stands.
func (uc *ReviewUseCase) refreshRating(ctx context.Context, productID string) {
	avg, count, err := uc.reviewRepo.AggregateRating(ctx, productID)
	if err != nil {
		uc.logger.Warn("failed to aggregate product rating", "product_id", productID, "error", err)
		return
	}
	rounded := math.Round(avg*10) / 10
	if err := uc.productRepo.UpdateRating(ctx, productID, rounded, count); err != nil {
		uc.logger.Warn("failed to update product rating", "product_id", productID, "error", err)
	}
}

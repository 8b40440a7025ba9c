package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/memory"
)

func newReviewFixture(t *testing.T) (*ReviewUseCase, *memory.ProductRepositoryMemory) {
	t.Helper()
	reviewRepo := memory.NewReviewRepositoryMemory()
	productRepo := memory.NewProductRepositoryMemory()
	require.NoError(t, productRepo.Create(context.Background(), &entities.Product{
		ProductID: "bike1",
		Name:      "Trail 29er",
		Price:     450.0,
		CreatedAt: time.Now(),
	}))
	return NewReviewUseCase(reviewRepo, productRepo, logger.NewLogger()), productRepo
}

func TestAddReview_UpdatesAggregate(t *testing.T) {
	uc, productRepo := newReviewFixture(t)
	ctx := context.Background()

	_, err := uc.AddReview(ctx, &entities.User{UserID: "u1", Name: "Ravi"}, "bike1", 5, "great bike")
	require.NoError(t, err)
	_, err = uc.AddReview(ctx, &entities.User{UserID: "u2", Name: "Asha"}, "bike1", 4, "solid")
	require.NoError(t, err)

	product, err := productRepo.GetByID(ctx, "bike1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, product.Rating)
	assert.Equal(t, 2, product.NumReviews)
}

func TestAddReview_RoundsToOneDecimal(t *testing.T) {
	uc, productRepo := newReviewFixture(t)
	ctx := context.Background()

	for _, rating := range []int{5, 4, 4} {
		_, err := uc.AddReview(ctx, &entities.User{UserID: "u", Name: "R"}, "bike1", rating, "ok")
		require.NoError(t, err)
	}

	product, err := productRepo.GetByID(ctx, "bike1")
	require.NoError(t, err)
	// 13/3 = 4.333... rounds to 4.3
	assert.Equal(t, 4.3, product.Rating)
	assert.Equal(t, 3, product.NumReviews)
}

func TestAddReview_Validation(t *testing.T) {
	uc, _ := newReviewFixture(t)
	ctx := context.Background()

	_, err := uc.AddReview(ctx, nil, "bike1", 0, "bad rating")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = uc.AddReview(ctx, nil, "bike1", 6, "bad rating")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = uc.AddReview(ctx, nil, "bike1", 3, "")
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = uc.AddReview(ctx, nil, "ghost", 3, "ok")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestAddReview_AnonymousFallback(t *testing.T) {
	uc, _ := newReviewFixture(t)

	review, err := uc.AddReview(context.Background(), nil, "bike1", 4, "nice")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", review.Name)
	assert.Empty(t, review.UserID)
}

func TestDeleteReview_RefreshesAggregate(t *testing.T) {
	uc, productRepo := newReviewFixture(t)
	ctx := context.Background()

	keep, err := uc.AddReview(ctx, &entities.User{UserID: "u1", Name: "Ravi"}, "bike1", 5, "great")
	require.NoError(t, err)
	drop, err := uc.AddReview(ctx, &entities.User{UserID: "u2", Name: "Asha"}, "bike1", 1, "meh")
	require.NoError(t, err)

	require.NoError(t, uc.DeleteReview(ctx, drop.ReviewID))

	product, err := productRepo.GetByID(ctx, "bike1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, product.Rating)
	assert.Equal(t, 1, product.NumReviews)

	reviews, err := uc.ReviewsByProduct(ctx, "bike1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, keep.ReviewID, reviews[0].ReviewID)

	assert.ErrorIs(t, uc.DeleteReview(ctx, "ghost"), repositories.ErrReviewNotFound)
}

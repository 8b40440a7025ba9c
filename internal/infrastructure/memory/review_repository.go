package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
)

type ReviewRepositoryMemory struct {
	mu      sync.RWMutex
	reviews map[string]*entities.Review
}

func NewReviewRepositoryMemory() *ReviewRepositoryMemory {
	return &ReviewRepositoryMemory{reviews: make(map[string]*entities.Review)}
}

func (r *ReviewRepositoryMemory) Create(ctx context.Context, review *entities.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *review
	r.reviews[review.ReviewID] = &clone
	return nil
}

func (r *ReviewRepositoryMemory) GetByID(ctx context.Context, reviewID string) (*entities.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[reviewID]
	if !ok {
		return nil, repositories.ErrReviewNotFound
	}
	clone := *review
	return &clone, nil
}

func (r *ReviewRepositoryMemory) ListByProduct(ctx context.Context, productID string) ([]*entities.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviews []*entities.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			clone := *review
			reviews = append(reviews, &clone)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (r *ReviewRepositoryMemory) Delete(ctx context.Context, reviewID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[reviewID]; !ok {
		return repositories.ErrReviewNotFound
	}
	delete(r.reviews, reviewID)
	return nil
}

func (r *ReviewRepositoryMemory) AggregateRating(ctx context.Context, productID string) (float64, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum, count int
	for _, review := range r.reviews {
		if review.ProductID == productID {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

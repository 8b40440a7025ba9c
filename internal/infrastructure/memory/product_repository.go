package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
)

type ProductRepositoryMemory struct {
	mu       sync.RWMutex
	products map[string]*entities.Product
}

func NewProductRepositoryMemory() *ProductRepositoryMemory {
	return &ProductRepositoryMemory{products: make(map[string]*entities.Product)}
}

func (r *ProductRepositoryMemory) Create(ctx context.Context, product *entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ProductID] = copyProduct(product)
	return nil
}

func (r *ProductRepositoryMemory) GetByID(ctx context.Context, productID string) (*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[productID]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	return copyProduct(product), nil
}

func (r *ProductRepositoryMemory) List(ctx context.Context) ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*entities.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, copyProduct(product))
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (r *ProductRepositoryMemory) Update(ctx context.Context, product *entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ProductID]; !ok {
		return repositories.ErrProductNotFound
	}
	r.products[product.ProductID] = copyProduct(product)
	return nil
}

func (r *ProductRepositoryMemory) Delete(ctx context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[productID]; !ok {
		return repositories.ErrProductNotFound
	}
	delete(r.products, productID)
	return nil
}

func (r *ProductRepositoryMemory) DecrementStock(ctx context.Context, productID string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return repositories.ErrProductNotFound
	}
	if product.Stock < qty {
		return repositories.ErrInsufficientStock
	}
	product.Stock -= qty
	return nil
}

func (r *ProductRepositoryMemory) UpdateRating(ctx context.Context, productID string, rating float64, numReviews int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return repositories.ErrProductNotFound
	}
	product.Rating = rating
	product.NumReviews = numReviews
	return nil
}

func copyProduct(product *entities.Product) *entities.Product {
	clone := *product
	clone.ImageURLs = make([]string, len(product.ImageURLs))
	copy(clone.ImageURLs, product.ImageURLs)
	return &clone
}

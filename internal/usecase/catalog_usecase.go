package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
)

var ErrInvalidProduct = errors.New("name and price are required")

// MediaUpload pairs a file stream with its original filename.
type MediaUpload struct {
	Name   string
	Reader io.Reader
}

type MediaUploader interface {
	UploadImage(ctx context.Context, upload MediaUpload) (string, error)
	UploadVideo(ctx context.Context, upload MediaUpload) (string, error)
}

type CatalogUseCase struct {
	productRepo repositories.ProductRepository
	uploader    MediaUploader
	logger      *logger.Logger
}

func NewCatalogUseCase(productRepo repositories.ProductRepository, uploader MediaUploader, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, uploader: uploader, logger: log}
}

func (uc *CatalogUseCase) CreateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	if product.Name == "" || product.Price <= 0 {
		return nil, ErrInvalidProduct
	}
	if product.Brand == "" {
		product.Brand = "SAC MTB"
	}
	if product.Category == "" {
		product.Category = "Bicycle"
	}
	product.ProductID = uuid.New().String()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (uc *CatalogUseCase) GetProduct(ctx context.Context, productID string) (*entities.Product, error) {
	return uc.productRepo.GetByID(ctx, productID)
}

func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]*entities.Product, error) {
	return uc.productRepo.List(ctx)
}

func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	existing, err := uc.productRepo.GetByID(ctx, product.ProductID)
	if err != nil {
		return nil, err
	}
	product.CreatedAt = existing.CreatedAt
	product.Rating = existing.Rating
	product.NumReviews = existing.NumReviews
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (uc *CatalogUseCase) DeleteProduct(ctx context.Context, productID string) error {
	return uc.productRepo.Delete(ctx, productID)
}

// UploadImages pushes each file to the media host and returns the hosted
// URLs in the same order.
func (uc *CatalogUseCase) UploadImages(ctx context.Context, uploads []MediaUpload) ([]string, error) {
	if len(uploads) == 0 {
		return nil, errors.New("no images provided")
	}
	urls := make([]string, 0, len(uploads))
	for _, up := range uploads {
		url, err := uc.uploader.UploadImage(ctx, up)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %w", up.Name, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (uc *CatalogUseCase) UploadVideo(ctx context.Context, upload MediaUpload) (string, error) {
	url, err := uc.uploader.UploadVideo(ctx, upload)
	if err != nil {
		return "", fmt.Errorf("failed to upload video %s: %w", upload.Name, err)
	}
	return url, nil
}

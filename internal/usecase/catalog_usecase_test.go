package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/memory"
)

type fakeUploader struct {
	uploads int
}

func (u *fakeUploader) UploadImage(ctx context.Context, upload MediaUpload) (string, error) {
	u.uploads++
	return fmt.Sprintf("https://cdn.example/images/%s", upload.Name), nil
}

func (u *fakeUploader) UploadVideo(ctx context.Context, upload MediaUpload) (string, error) {
	u.uploads++
	return fmt.Sprintf("https://cdn.example/videos/%s", upload.Name), nil
}

func TestCreateProduct_Defaults(t *testing.T) {
	uc := NewCatalogUseCase(memory.NewProductRepositoryMemory(), &fakeUploader{}, logger.NewLogger())

	product, err := uc.CreateProduct(context.Background(), &entities.Product{
		Name:  "Trail 29er",
		Price: 450.0,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ProductID)
	assert.Equal(t, "SAC MTB", product.Brand)
	assert.Equal(t, "Bicycle", product.Category)

	_, err = uc.CreateProduct(context.Background(), &entities.Product{Price: 10})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = uc.CreateProduct(context.Background(), &entities.Product{Name: "Free Bike"})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestUpdateProduct_PreservesAggregates(t *testing.T) {
	repo := memory.NewProductRepositoryMemory()
	uc := NewCatalogUseCase(repo, &fakeUploader{}, logger.NewLogger())
	ctx := context.Background()

	product, err := uc.CreateProduct(ctx, &entities.Product{Name: "Trail 29er", Price: 450.0})
	require.NoError(t, err)
	created := product.CreatedAt

	require.NoError(t, repo.UpdateRating(ctx, product.ProductID, 4.5, 7))

	updated, err := uc.UpdateProduct(ctx, &entities.Product{
		ProductID: product.ProductID,
		Name:      "Trail 29er v2",
		Price:     500.0,
		CreatedAt: time.Now().Add(time.Hour),
		Rating:    1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, created, updated.CreatedAt, "creation time survives updates")
	assert.Equal(t, 4.5, updated.Rating, "rating aggregate survives updates")
	assert.Equal(t, 7, updated.NumReviews)
	assert.Equal(t, "Trail 29er v2", updated.Name)
}

func TestUploadImages(t *testing.T) {
	uploader := &fakeUploader{}
	uc := NewCatalogUseCase(memory.NewProductRepositoryMemory(), uploader, logger.NewLogger())
	ctx := context.Background()

	urls, err := uc.UploadImages(ctx, []MediaUpload{
		{Name: "front.jpg", Reader: strings.NewReader("jpeg")},
		{Name: "side.jpg", Reader: strings.NewReader("jpeg")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.example/images/front.jpg",
		"https://cdn.example/images/side.jpg",
	}, urls)
	assert.Equal(t, 2, uploader.uploads)

	_, err = uc.UploadImages(ctx, nil)
	assert.Error(t, err)

	url, err := uc.UploadVideo(ctx, MediaUpload{Name: "demo.mp4", Reader: strings.NewReader("mp4")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/videos/demo.mp4", url)
}

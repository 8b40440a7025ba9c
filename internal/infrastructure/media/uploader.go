// Package media uploads product media to Cloudinary.
package media

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
	folder string
	logger *logger.Logger
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string, log *logger.Logger) (*CloudinaryUploader, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &CloudinaryUploader{client: client, folder: folder, logger: log}, nil
}

func (u *CloudinaryUploader) UploadImage(ctx context.Context, upload usecase.MediaUpload) (string, error) {
	return u.upload(ctx, upload, "image")
}

func (u *CloudinaryUploader) UploadVideo(ctx context.Context, upload usecase.MediaUpload) (string, error) {
	return u.upload(ctx, upload, "video")
}

func (u *CloudinaryUploader) upload(ctx context.Context, upload usecase.MediaUpload, resourceType string) (string, error) {
	result, err := u.client.Upload.Upload(ctx, upload.Reader, uploader.UploadParams{
		Folder:       u.folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s %q: %w", resourceType, upload.Name, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload %s %q: %s", resourceType, upload.Name, result.Error.Message)
	}

	u.logger.Info("Uploaded media", "type", resourceType, "name", upload.Name, "url", result.SecureURL)
	return result.SecureURL, nil
}

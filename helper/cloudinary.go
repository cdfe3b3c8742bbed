package helper

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/CuCryptos/cruise-photos/config"
)

func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Cloudinary init failed: %v", err)
	}
	return cld
}

// PhotoStorage is the blob surface the upload/delete handlers depend on.
type PhotoStorage interface {
	Upload(ctx context.Context, r io.Reader, folder, publicID string) (url string, storedID string, err error)
	Delete(ctx context.Context, publicID string) error
}

// CloudinaryStorage stores full-resolution photos in Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld}
}

func (s *CloudinaryStorage) Upload(ctx context.Context, r io.Reader, folder, publicID string) (string, string, error) {
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", "", err
	}
	return result.SecureURL, result.PublicID, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// ThumbnailURL derives a 400px-wide delivery URL from a full-resolution
// Cloudinary URL. Falls back to the original when the URL shape is unknown.
func ThumbnailURL(fullURL string) string {
	const marker = "/upload/"
	idx := strings.Index(fullURL, marker)
	if idx < 0 {
		return fullURL
	}
	return fullURL[:idx+len(marker)] + "c_limit,w_400/" + fullURL[idx+len(marker):]
}

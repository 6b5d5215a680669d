package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Config holds Cloudinary credentials (from env or config).
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

// UploadResult carries what callers persist after a successful upload.
type UploadResult struct {
	URL          string
	PublicID     string
	ResourceType string
}

// Client wraps Cloudinary upload and deletion for media evidence, signatures
// and generated PDFs.
type Client interface {
	Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error)
	Delete(ctx context.Context, publicID, resourceType string) error
}

const uploadFolder = "media_uploads"

// ResourceTypeFor maps a file extension onto the Cloudinary resource type.
// Audio goes through the video pipeline, documents are stored raw. Unknown
// extensions are rejected before any bytes leave the server.
func ResourceTypeFor(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp":
		return "image", nil
	case ".mp4", ".avi", ".mov", ".wmv", ".flv":
		return "video", nil
	case ".mp3", ".wav", ".aac", ".flac":
		return "video", nil
	case ".pdf", ".doc", ".docx", ".txt":
		return "raw", nil
	default:
		return "", fmt.Errorf("unsupported file extension: %s", ext)
	}
}

type clientImpl struct {
	cloudName string
	uploader  *uploader.API
}

// NewClientFromParams builds a Client from Cloudinary cloud name, API key, and secret.
func NewClientFromParams(cloudName, apiKey, apiSecret string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{
		cloudName: cloudName,
		uploader:  up,
	}, nil
}

// Upload streams a file to Cloudinary under the shared media folder. PDFs keep
// their original base name as public id so generated report PDFs stay
// addressable by case number.
func (c *clientImpl) Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error) {
	resourceType, err := ResourceTypeFor(filename)
	if err != nil {
		return nil, err
	}

	params := uploader.UploadParams{
		Folder:       uploadFolder,
		ResourceType: resourceType,
	}
	if strings.ToLower(filepath.Ext(filename)) == ".pdf" {
		base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		params.PublicID = base
		params.Format = "pdf"
	}

	result, err := c.uploader.Upload(ctx, file, params)
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		URL:          result.SecureURL,
		PublicID:     result.PublicID,
		ResourceType: resourceType,
	}, nil
}

// Delete destroys an uploaded asset by public id.
func (c *clientImpl) Delete(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = "raw"
	}
	_, err := c.uploader.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	return err
}

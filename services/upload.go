package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const uploadFolder = "ride_documents"

// UploadResult is what the upload gateway hands back for a stored asset.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader is the upload gateway the ride pipeline and QR endpoints talk to.
// Cloudinary backs it in production; tests substitute fakes.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader() (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"))
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, data []byte, filename string) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, errors.New("no file content to upload")
	}

	publicID := fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(filename))
	resp, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID: publicID,
		Folder:   uploadFolder,
	})
	if err != nil {
		return nil, err
	}
	return &UploadResult{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return errors.New("public id is required for cloudinary delete")
	}

	resp, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if resp.Result != "ok" {
		return fmt.Errorf("cloudinary destroy returned %q for %s", resp.Result, publicID)
	}
	return nil
}

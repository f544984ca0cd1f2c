// file: internals/helpers/oss/oss_file_service.go
package oss

import (
	"fmt"
	"mime/multipart"
)

// BlobService is the upload/delete facade controllers and services talk to.
// Image attachments are re-encoded to WebP, everything else is stored as-is.
type BlobService interface {
	UploadAttachment(dir string, fh *multipart.FileHeader) (publicURL string, err error)
	DeleteByPublicURL(publicURL string) error
}

type OSSBlobService struct {
	svc *OSSService
}

// NewOSSBlobServiceFromEnv builds the facade from ALI_OSS_* env vars.
// prefix is optional (e.g. "uploads").
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadAttachment(dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if IsImageFilename(fh.Filename) {
		key, err := b.svc.UploadImageAsWebP(dir, fh)
		if err != nil {
			return "", err
		}
		return b.svc.PublicURL(key), nil
	}
	key, _, err := b.svc.UploadFromFormFileToDir(dir, fh)
	if err != nil {
		return "", err
	}
	return b.svc.PublicURL(key), nil
}

func (b *OSSBlobService) DeleteByPublicURL(publicURL string) error {
	return b.svc.DeleteByPublicURL(publicURL)
}

package blogService

import (
	"context"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"BlogPublisher/internal/api/blog"
	contextPkg "BlogPublisher/pkg/context"
	"github.com/sirupsen/logrus"
)

var (
	allowedImageExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
		".bmp":  true,
	}

	allowedImageContentTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
		"image/bmp":  true,
	}
)

func (s *blogsService) UploadImage(ctx context.Context, userID string, file *multipart.FileHeader) (*blogs.ImageUploadResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := validateImageFile(file); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Warn("Rejected image upload")
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to open uploaded file")
		return nil, blogs.ErrFailedToUpload
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageSizeBytes+1))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to read uploaded file")
		return nil, blogs.ErrFailedToUpload
	}
	if len(data) > maxImageSizeBytes {
		return nil, blogs.ErrFileTooLarge
	}

	url, err := s.s3Client.UploadFile(ctx, data, file.Filename, contentTypeOf(file))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to upload image")
		return nil, blogs.ErrFailedToUpload
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    userID,
		"url":        url,
	}).Info("Image uploaded")

	return &blogs.ImageUploadResponse{URL: url}, nil
}

// removeImage deletes a replaced featured image when it lives in our bucket. Failures are only logged.
func (s *blogsService) removeImage(ctx context.Context, url string) {
	if s.s3Client == nil || !s.s3Client.OwnsURL(url) {
		return
	}

	if err := s.s3Client.DeleteFile(ctx, url); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"url":        url,
			"error":      err.Error(),
		}).Warn("Failed to delete replaced image")
	}
}

func validateImageFile(file *multipart.FileHeader) error {
	if file == nil || file.Size == 0 {
		return blogs.ErrEmptyFile
	}

	if file.Size > maxImageSizeBytes {
		return blogs.ErrFileTooLarge
	}

	if !allowedImageExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		return blogs.ErrInvalidFileType
	}

	if !allowedImageContentTypes[contentTypeOf(file)] {
		return blogs.ErrInvalidFileType
	}

	return nil
}

func contentTypeOf(file *multipart.FileHeader) string {
	contentType := strings.ToLower(file.Header.Get("Content-Type"))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}

package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/foodgram/backend/config"
)

// ImageService stores uploaded recipe images. Payloads arrive as base64
// data URIs; the stored reference is opaque to the rest of the system.
type ImageService struct {
	s3Config *config.S3Config
	mediaDir string
}

// NewImageService creates an ImageService. s3Config may be nil, in which
// case images are written to mediaDir on local disk.
func NewImageService(s3Config *config.S3Config, mediaDir string) *ImageService {
	if mediaDir == "" {
		mediaDir = "media"
	}
	return &ImageService{
		s3Config: s3Config,
		mediaDir: mediaDir,
	}
}

// StoreBase64 decodes a "data:image/<ext>;base64,<payload>" URI (or a bare
// base64 payload, treated as PNG) and stores it, returning the stored URL.
func (s *ImageService) StoreBase64(ctx context.Context, data string) (string, error) {
	ext := "png"
	payload := data
	if strings.HasPrefix(data, "data:") {
		parts := strings.SplitN(data, ",", 2)
		if len(parts) != 2 {
			return "", newValidationError("image", "malformed image payload")
		}
		header, body := parts[0], parts[1]
		if mediaType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64"); strings.HasPrefix(mediaType, "image/") {
			ext = strings.TrimPrefix(mediaType, "image/")
		}
		payload = body
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", newValidationError("image", "invalid base64 image payload")
	}

	fileName := fmt.Sprintf("recipes/%s.%s", uuid.New().String(), ext)
	if s.s3Config != nil {
		return s.uploadToS3(ctx, decoded, fileName, ext)
	}
	return s.writeLocal(decoded, fileName)
}

func (s *ImageService) uploadToS3(ctx context.Context, data []byte, fileName, ext string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/" + ext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Uploaded image to S3: %s", publicURL)
	return publicURL, nil
}

func (s *ImageService) writeLocal(data []byte, fileName string) (string, error) {
	path := filepath.Join(s.mediaDir, filepath.FromSlash(fileName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return "/" + filepath.ToSlash(path), nil
}

package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
)

// ImageService lists the user's uploaded images and runs the detection
// pipeline on new uploads.
type ImageService interface {
	List(ctx context.Context) ([]models.Image, error)
	Latest(ctx context.Context, n int) ([]models.Image, error)
	Upload(ctx context.Context, keyword, path string) (*api.PipelineResult, error)
}

type imageService struct {
	client api.Client
}

func NewImageService(client api.Client) ImageService {
	return &imageService{client: client}
}

func (s *imageService) List(ctx context.Context) ([]models.Image, error) {
	return s.client.MyImages(ctx)
}

// Latest returns up to n images, newest first.
func (s *imageService) Latest(ctx context.Context, n int) ([]models.Image, error) {
	images, err := s.client.MyImages(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].CreatedAt.After(images[j].CreatedAt)
	})
	if len(images) > n {
		images = images[:n]
	}
	return images, nil
}

// Upload reads the local file and submits it to the synchronous detection
// pipeline. The underlying call carries the long pipeline timeout.
func (s *imageService) Upload(ctx context.Context, keyword, path string) (*api.PipelineResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.client.RunPipeline(ctx, keyword, filepath.Base(path), data)
}

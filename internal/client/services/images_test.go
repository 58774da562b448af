package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
)

func TestImageService_LatestSortsNewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	fc := newFakeClient()
	fc.MyImagesRet = []models.Image{
		{ID: 1, CreatedAt: base},
		{ID: 3, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 2, CreatedAt: base.Add(time.Hour)},
	}

	svc := NewImageService(fc)
	got, err := svc.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(3), got[0].ID)
	require.Equal(t, int64(2), got[1].ID)
}

func TestImageService_LatestShorterThanLimit(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	fc.MyImagesRet = []models.Image{{ID: 1}}

	svc := NewImageService(fc)
	got, err := svc.Latest(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestImageService_UploadReadsFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "art.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpegdata"), 0o660))

	fc := newFakeClient()
	fc.RunPipelineRet = &api.PipelineResult{Success: true, ImageID: 12}

	svc := NewImageService(fc)
	res, err := svc.Upload(ctx, "artwork", path)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 1, fc.Calls["RunPipeline"])
}

func TestImageService_UploadMissingFile(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()

	svc := NewImageService(fc)
	_, err := svc.Upload(ctx, "kw", filepath.Join(t.TempDir(), "absent.jpg"))
	require.Error(t, err)
	require.Zero(t, fc.Calls["RunPipeline"])
}

package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sentinelai/sentinel-cli/internal/client/models"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestReportService_DownloadSavesDocument(t *testing.T) {
	ctx := context.Background()
	chdirTemp(t)

	fc := newFakeClient()
	fc.DownloadReportRet = []byte("%PDF-1.7 fake")

	svc := NewReportService(fc)
	path, err := svc.Download(ctx, 3)
	require.NoError(t, err)
	require.Contains(t, path, "report_3.pdf")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.7 fake"), data)
}

func TestReportService_DownloadFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	chdirTemp(t)

	fc := newFakeClient()
	fc.DownloadReportErr = errors.New("boom")

	svc := NewReportService(fc)
	_, err := svc.Download(ctx, 3)
	require.Error(t, err)

	_, statErr := os.Stat("downloads")
	require.True(t, os.IsNotExist(statErr))
}

func TestReportService_List(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	fc.ReportsRet = []models.Report{{ID: 1, Status: models.ReportPending}}

	svc := NewReportService(fc)
	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, models.ReportPending, got[0].Status)
}

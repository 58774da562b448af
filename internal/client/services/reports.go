package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
	"github.com/sentinelai/sentinel-cli/internal/filex"
)

// reportDownloadDir is where fetched report documents are saved, relative
// to the working directory.
const reportDownloadDir = "downloads"

// ReportService lists generated DMCA reports, downloads their documents and
// triggers the takedown email.
type ReportService interface {
	List(ctx context.Context) ([]models.Report, error)
	// Download fetches the report document and writes it to the downloads
	// directory, returning the saved path.
	Download(ctx context.Context, id int64) (string, error)
	SendEmail(ctx context.Context, id int64) error
}

type reportService struct {
	client api.Client
}

func NewReportService(client api.Client) ReportService {
	return &reportService{client: client}
}

func (s *reportService) List(ctx context.Context) ([]models.Report, error) {
	return s.client.Reports(ctx)
}

func (s *reportService) Download(ctx context.Context, id int64) (string, error) {
	data, err := s.client.DownloadReport(ctx, id)
	if err != nil {
		return "", err
	}

	dir, err := filex.EnsureSubDir(reportDownloadDir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("report_%d.pdf", id))
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}

func (s *reportService) SendEmail(ctx context.Context, id int64) error {
	return s.client.SendReportEmail(ctx, id)
}

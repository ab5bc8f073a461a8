package client

import (
	"context"
	"fmt"

	"github.com/MrJinPro/SVOD/pkg/models"
)

// ListReports lists generated and scheduled reports. path may carry the
// type/status filters.
func (c *SvodClient) ListReports(ctx context.Context, path string) ([]models.Report, error) {
	var reports []models.Report
	if err := c.Get(ctx, path, &reports); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

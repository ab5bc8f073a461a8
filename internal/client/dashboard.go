package client

import (
	"context"
	"fmt"

	"github.com/MrJinPro/SVOD/pkg/models"
)

// GetDashboardStats fetches the headline counters for today.
func (c *SvodClient) GetDashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.Get(ctx, PathDashboardStats, &stats); err != nil {
		return stats, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return stats, nil
}

// GetTimeline returns today's events in 2-hour buckets.
func (c *SvodClient) GetTimeline(ctx context.Context) ([]models.TimelinePoint, error) {
	var points []models.TimelinePoint
	if err := c.Get(ctx, PathDashboardTimeline, &points); err != nil {
		return nil, fmt.Errorf("failed to get timeline: %w", err)
	}
	return points, nil
}

// GetTypeDistribution returns event counts by type over the last 24 hours.
func (c *SvodClient) GetTypeDistribution(ctx context.Context) ([]models.TypeSlice, error) {
	var slices []models.TypeSlice
	if err := c.Get(ctx, PathDashboardByType, &slices); err != nil {
		return nil, fmt.Errorf("failed to get type distribution: %w", err)
	}
	return slices, nil
}

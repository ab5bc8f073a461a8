package client

import (
	"context"
	"fmt"

	"github.com/MrJinPro/SVOD/pkg/models"
)

// GetNotifications lists the current user's notifications, newest first.
func (c *SvodClient) GetNotifications(ctx context.Context) ([]models.Notification, error) {
	var items []models.Notification
	if err := c.Get(ctx, PathNotifications, &items); err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return items, nil
}

// MarkAllNotificationsRead marks every visible notification as read.
func (c *SvodClient) MarkAllNotificationsRead(ctx context.Context) (models.MarkReadResult, error) {
	var res models.MarkReadResult
	if err := c.Post(ctx, PathNotificationsRead, nil, &res); err != nil {
		return res, err
	}
	return res, nil
}

// ClearNotifications hides everything up to now for the current user.
func (c *SvodClient) ClearNotifications(ctx context.Context) error {
	var res map[string]any
	return c.Delete(ctx, PathNotificationsWipe, &res)
}

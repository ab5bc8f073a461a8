package client

import (
	"context"
	"fmt"

	"github.com/MrJinPro/SVOD/pkg/models"
)

// GetObject fetches the full card of a guarded object, with groups and responsibles.
func (c *SvodClient) GetObject(ctx context.Context, id string) (models.ObjectDetails, error) {
	var obj models.ObjectDetails
	if err := c.Get(ctx, ObjectPath(id), &obj); err != nil {
		return obj, fmt.Errorf("failed to get object %s: %w", id, err)
	}
	return obj, nil
}

func (c *SvodClient) ListObjects(ctx context.Context, path string) (models.PaginatedResponse[models.ObjectListItem], error) {
	var page models.PaginatedResponse[models.ObjectListItem]
	if err := c.Get(ctx, path, &page); err != nil {
		return page, fmt.Errorf("failed to list objects: %w", err)
	}
	return page, nil
}

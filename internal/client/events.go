package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MrJinPro/SVOD/pkg/models"
)

// ListEvents fetches one page of the event journal. path already carries the
// page/filter query built by the caller.
func (c *SvodClient) ListEvents(ctx context.Context, path string) (models.PaginatedResponse[models.Event], error) {
	var page models.PaginatedResponse[models.Event]
	if err := c.Get(ctx, path, &page); err != nil {
		return page, fmt.Errorf("failed to list events: %w", err)
	}
	return page, nil
}

func (c *SvodClient) GetEvent(ctx context.Context, id string) (models.Event, error) {
	var evt models.Event
	if err := c.Get(ctx, EventPath(id), &evt); err != nil {
		return evt, fmt.Errorf("failed to get event %s: %w", id, err)
	}
	return evt, nil
}

// SearchPath addresses the full-text search over description, object,
// client and location.
func SearchPath(q string) string {
	return WithQuery(PathSearchEvents, url.Values{"q": {q}})
}

// SearchEvents fetches a SearchPath result.
func (c *SvodClient) SearchEvents(ctx context.Context, path string) ([]models.Event, error) {
	items := []models.Event{}
	if err := c.Get(ctx, path, &items); err != nil {
		return []models.Event{}, fmt.Errorf("failed to search events: %w", err)
	}
	if items == nil {
		items = []models.Event{}
	}
	return items, nil
}

package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/MrJinPro/SVOD/pkg/models"
)

// StartObjectsSync queues a background import of objects, groups and
// responsibles from the agency database and returns the job handle.
func (c *SvodClient) StartObjectsSync(ctx context.Context) (models.JobAccepted, error) {
	var accepted models.JobAccepted
	err := c.Post(ctx, PathSyncObjectsStart, nil, &accepted)
	return accepted, err
}

// SyncObjects runs the objects import inside the request (older endpoint).
func (c *SvodClient) SyncObjects(ctx context.Context) (models.SyncResult, error) {
	var res models.SyncResult
	err := c.postLong(ctx, PathSyncObjects, nil, &res)
	return res, err
}

// SyncEvents imports up to limit archived events.
func (c *SvodClient) SyncEvents(ctx context.Context, limit int) (models.SyncResult, error) {
	var res models.SyncResult
	path := WithQuery(PathSyncEvents, url.Values{"limit": {strconv.Itoa(limit)}})
	err := c.postLong(ctx, path, nil, &res)
	return res, err
}

func (c *SvodClient) GetJob(ctx context.Context, id string) (models.Job, error) {
	var job models.Job
	err := c.Get(ctx, JobPath(id), &job)
	return job, err
}

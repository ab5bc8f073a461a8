// Package jobs drives the server's background sync jobs: start, poll until a
// terminal state, and report the result.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/pkg/models"
)

const (
	DefaultInterval = 1500 * time.Millisecond
	DefaultTimeout  = 30 * time.Minute
)

// ErrPollTimeout is returned when a job has not finished within the poll ceiling.
var ErrPollTimeout = errors.New("Таймаут ожидания завершения синхронизации")

var errPending = errors.New("job still running")

// JobError is a failure the job itself reported.
type JobError struct {
	JobID   string
	Message string
}

func (e *JobError) Error() string {
	if e.Message == "" {
		return "Ошибка синхронизации"
	}
	return e.Message
}

type Poller struct {
	Interval time.Duration
	Timeout  time.Duration

	client *client.SvodClient
	log    logrus.FieldLogger
}

func NewPoller(c *client.SvodClient) *Poller {
	return &Poller{
		Interval: DefaultInterval,
		Timeout:  DefaultTimeout,
		client:   c,
		log:      logrus.WithField("component", "jobs"),
	}
}

// Wait polls the job until it reports done or error. The first poll is
// immediate; later polls are Interval apart. A request failure stops polling.
func (p *Poller) Wait(ctx context.Context, jobID string) (models.Job, error) {
	polls := 0
	job, err := backoff.Retry(ctx,
		func() (models.Job, error) {
			polls++
			job, err := p.client.GetJob(ctx, jobID)
			if err != nil {
				return job, backoff.Permanent(err)
			}
			if !job.Status.Terminal() {
				return job, errPending
			}
			return job, nil
		},
		backoff.WithBackOff(backoff.NewConstantBackOff(p.Interval)),
		backoff.WithMaxElapsedTime(p.Timeout),
		backoff.WithNotify(func(_ error, next time.Duration) {
			p.log.WithFields(logrus.Fields{"job": jobID, "polls": polls, "next": next}).Debug("job pending")
		}),
	)
	if errors.Is(err, errPending) {
		return job, ErrPollTimeout
	}
	if err != nil {
		return job, err
	}

	if job.Status == models.JobError {
		return job, &JobError{JobID: jobID, Message: job.Error}
	}
	return job, nil
}

// Result extracts the payload of a finished job. A job without a result is
// reported as itself.
func Result(job models.Job) models.SyncResult {
	var res models.SyncResult
	if len(job.Result) > 0 && json.Unmarshal(job.Result, &res) == nil && res != nil {
		return res
	}
	raw, _ := json.Marshal(job)
	_ = json.Unmarshal(raw, &res)
	return res
}

// ObjectsSync describes how an objects import was carried out.
type ObjectsSync struct {
	JobID  string // empty when the synchronous endpoint was used
	Result models.SyncResult
}

// SyncObjects imports objects from the agency database. It prefers the
// background job and falls back to the synchronous endpoint when the job
// cannot be started. onStarted, if set, is called once the job is queued.
func (p *Poller) SyncObjects(ctx context.Context, onStarted func(jobID string)) (ObjectsSync, error) {
	accepted, err := p.client.StartObjectsSync(ctx)
	if err != nil || accepted.JobID == "" {
		p.log.WithError(err).Debug("background sync unavailable, using synchronous endpoint")
		res, err := p.client.SyncObjects(ctx)
		if err != nil {
			return ObjectsSync{}, err
		}
		return ObjectsSync{Result: res}, nil
	}

	if onStarted != nil {
		onStarted(accepted.JobID)
	}

	job, err := p.Wait(ctx, accepted.JobID)
	if err != nil {
		return ObjectsSync{JobID: accepted.JobID}, err
	}
	return ObjectsSync{JobID: accepted.JobID, Result: Result(job)}, nil
}

// SyncEvents imports up to limit archived events. The limit is clamped.
func (p *Poller) SyncEvents(ctx context.Context, limit int) (models.SyncResult, error) {
	return p.client.SyncEvents(ctx, ClampEventsLimit(limit))
}

const (
	DefaultEventsLimit = 500
	MaxEventsLimit     = 5000
)

// ClampEventsLimit maps 0 to the default and anything else into 1..MaxEventsLimit.
func ClampEventsLimit(limit int) int {
	if limit == 0 {
		return DefaultEventsLimit
	}
	return max(1, min(MaxEventsLimit, limit))
}

func ObjectsDoneMessage(res models.SyncResult) string {
	return fmt.Sprintf("Готово: %d объектов", res.Int("objects"))
}

func EventsDoneMessage(res models.SyncResult) string {
	return fmt.Sprintf("Готово: %d событий", res.Int("processed"))
}

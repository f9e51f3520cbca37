package queue

import (
	"context"
	"time"
)

// Job is a unit of queued work driving one meeting record through the
// pipeline. AudioPath is copied at enqueue time so the job does not depend
// on later record mutation.
type Job struct {
	ID          string        `json:"id"`
	MeetingID   string        `json:"meetingId"`
	AudioPath   string        `json:"audioPath"`
	Attempt     int           `json:"attempt"`
	MaxAttempts int           `json:"maxAttempts"`
	Priority    int           `json:"priority"`
	BaseDelay   time.Duration `json:"baseDelay"`
	EnqueuedAt  time.Time     `json:"enqueuedAt"`
	LastError   string        `json:"lastError,omitempty"`
}

// Options controls scheduling of an enqueued job.
type Options struct {
	// Priority orders ready jobs; lower executes first.
	Priority int
	// MaxAttempts is the total attempt budget, including the first run.
	MaxAttempts int
	// BaseDelay seeds the exponential backoff between retries.
	BaseDelay time.Duration
}

// ApplyDefaults fills zero-valued options with the queue defaults
// (priority 1, 3 attempts, 2s base delay).
func (o *Options) ApplyDefaults() {
	if o.Priority <= 0 {
		o.Priority = 1
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = 2 * time.Second
	}
}

// Stats are point-in-time job counts per queue section. Eventually
// consistent; produced without blocking writers.
type Stats struct {
	Waiting   int64 `json:"waiting"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}

// Queue is the durable work queue contract the pipeline builds on.
type Queue interface {
	// Enqueue adds a job for the given meeting. It never blocks on
	// downstream processing and fails only if the backing store is
	// unreachable.
	Enqueue(ctx context.Context, meetingID, audioPath string, opts Options) (*Job, error)

	// Dequeue leases the next ready job, or returns (nil, nil) when the
	// queue is empty. The leased job is invisible to other workers until
	// Ack, Fail, or lease expiry.
	Dequeue(ctx context.Context) (*Job, error)

	// Ack removes a leased job permanently after successful processing.
	Ack(ctx context.Context, jobID string) error

	// Fail records a failed attempt. Retryable causes with attempts left
	// re-schedule the job after an exponential backoff delay; otherwise
	// the job moves to the dead set and exhausted is true.
	Fail(ctx context.Context, jobID string, cause error) (exhausted bool, err error)

	// Stats returns current job counts.
	Stats(ctx context.Context) (Stats, error)
}

package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillsenselab/minutes/logger"
	"github.com/skillsenselab/minutes/queue"
)

// Submitter is the job entry point. Queue-less deployments run jobs
// through the in-process runner; when a durable queue is configured, an
// enqueue failure surfaces to the caller as an infrastructure error rather
// than being silently downgraded to a non-durable run.
type Submitter struct {
	queue  queue.Queue // nil in queue-less deployments
	runner *InlineRunner
	log    *logger.Logger
}

// NewSubmitter creates a Submitter. queue may be nil; runner must not be.
func NewSubmitter(q queue.Queue, runner *InlineRunner, log *logger.Logger) *Submitter {
	if log == nil {
		log = logger.NewNop()
	}
	return &Submitter{queue: q, runner: runner, log: log.WithComponent("submit")}
}

// SubmitJob schedules processing for a meeting. The returned job describes
// how the work was scheduled; inline jobs carry a synthetic id and a
// single-attempt budget.
func (s *Submitter) SubmitJob(ctx context.Context, meetingID, audioPath string, opts queue.Options) (*queue.Job, error) {
	if s.queue != nil {
		job, err := s.queue.Enqueue(ctx, meetingID, audioPath, opts)
		if err != nil {
			s.log.Error("enqueue failed", logger.ErrorFields("enqueue", err))
			return nil, err
		}
		s.log.Info("job enqueued", logger.Fields(
			logger.FieldJobID, job.ID,
			logger.FieldMeetingID, meetingID,
			logger.FieldPriority, job.Priority,
		))
		return job, nil
	}

	s.runner.Run(ctx, meetingID, audioPath)
	return &queue.Job{
		ID:          "inline-" + uuid.NewString(),
		MeetingID:   meetingID,
		AudioPath:   audioPath,
		Attempt:     1,
		MaxAttempts: 1,
	}, nil
}

// QueueStats returns current queue counts. Queue-less deployments report
// zero counts rather than an error.
func (s *Submitter) QueueStats(ctx context.Context) (queue.Stats, error) {
	if s.queue == nil {
		return queue.Stats{}, nil
	}
	return s.queue.Stats(ctx)
}

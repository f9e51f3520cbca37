package pipeline

import (
	"context"
	"sync"

	"github.com/skillsenselab/minutes/logger"
)

// InlineRunner processes meetings in-process, without the queue. It is the
// degraded mode used when Redis is unreachable: fire-and-forget, single
// attempt, no retry scheduling. Jobs run through the same Processor as the
// queued path, so the record moves through identical states.
type InlineRunner struct {
	processor *Processor
	log       *logger.Logger
	wg        sync.WaitGroup
}

// NewInlineRunner creates an InlineRunner.
func NewInlineRunner(processor *Processor, log *logger.Logger) *InlineRunner {
	if log == nil {
		log = logger.NewNop()
	}
	return &InlineRunner{
		processor: processor,
		log:       log.WithComponent("inline"),
	}
}

// Run starts processing the meeting in a background goroutine and returns
// immediately. The job outlives the caller's context (a request-scoped ctx
// ends right after the response); failures are persisted on the record and
// logged, there is no retry.
func (r *InlineRunner) Run(ctx context.Context, meetingID, audioPath string) {
	ctx = context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.processor.Process(ctx, meetingID, audioPath); err != nil {
			r.log.Error("in-process job failed", logger.Fields(
				logger.FieldMeetingID, meetingID,
				logger.FieldError, err.Error(),
			))
		}
	}()
}

// Wait blocks until all in-flight jobs finish.
func (r *InlineRunner) Wait() {
	r.wg.Wait()
}

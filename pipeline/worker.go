package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/skillsenselab/minutes/logger"
	"github.com/skillsenselab/minutes/queue"
)

const (
	defaultConcurrency  = 2
	defaultPollInterval = time.Second
)

// Worker leases jobs from the queue and runs them through the Processor.
// It runs a fixed number of polling goroutines; each leased job is
// processed to completion and then acked, or failed back to the queue for
// retry scheduling.
type Worker struct {
	queue     queue.Queue
	processor *Processor
	conc      int
	poll      time.Duration
	log       *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// WorkerConfig wires a Worker.
type WorkerConfig struct {
	Queue     queue.Queue
	Processor *Processor
	// Concurrency is the number of polling goroutines (default 2).
	Concurrency int
	// PollInterval is the idle sleep between empty polls (default 1s).
	PollInterval time.Duration
	Logger       *logger.Logger
}

// NewWorker creates a Worker.
func NewWorker(cfg WorkerConfig) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Worker{
		queue:     cfg.Queue,
		processor: cfg.Processor,
		conc:      cfg.Concurrency,
		poll:      cfg.PollInterval,
		log:       log.WithComponent("worker"),
	}
}

// Start launches the polling goroutines. It returns immediately; call
// Stop to drain and shut down.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return fmt.Errorf("worker already started")
	}
	w.started = true

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < w.conc; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.run(ctx, id)
		}(i)
	}
	go func() {
		wg.Wait()
		close(w.done)
	}()

	w.log.Info("worker started", logger.Fields("concurrency", w.conc))
	return nil
}

// Stop cancels polling and waits for in-flight jobs to run to completion.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel, done, started := w.cancel, w.done, w.started
	w.started = false
	w.mu.Unlock()
	if !started {
		return
	}
	cancel()
	<-done
	w.log.Info("worker stopped")
}

func (w *Worker) run(ctx context.Context, id int) {
	log := w.log.WithFields(logger.Fields(logger.FieldWorker, id))
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("dequeue failed", logger.ErrorFields("dequeue", err))
			w.sleep(ctx)
			continue
		}
		if job == nil {
			w.sleep(ctx)
			continue
		}

		// Stop cancels the polling context only; a leased job runs to
		// completion under its own context so shutdown drains instead of
		// burning the job an attempt with a context-canceled failure.
		w.handle(context.WithoutCancel(ctx), log, job)
	}
}

func (w *Worker) handle(ctx context.Context, log *logger.Logger, job *queue.Job) {
	log = log.WithFields(logger.Fields(
		logger.FieldJobID, job.ID,
		logger.FieldMeetingID, job.MeetingID,
		logger.FieldAttempt, job.Attempt,
	))
	log.Info("job leased")

	if err := w.processor.Process(ctx, job.MeetingID, job.AudioPath); err != nil {
		exhausted, failErr := w.queue.Fail(ctx, job.ID, err)
		if failErr != nil {
			log.Error("job failure not recorded", logger.ErrorFields("fail", failErr))
			return
		}
		if exhausted {
			log.Error("job moved to dead set", logger.ErrorFields("process", err))
		} else {
			log.Warn("job scheduled for retry", logger.ErrorFields("process", err))
		}
		return
	}

	if err := w.queue.Ack(ctx, job.ID); err != nil {
		// The lease will expire and the job will be re-delivered; Process
		// converges, so the duplicate run is harmless.
		log.Error("ack failed", logger.ErrorFields("ack", err))
		return
	}
	log.Info("job completed")
}

func (w *Worker) sleep(ctx context.Context) {
	select {
	case <-time.After(w.poll):
	case <-ctx.Done():
	}
}

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	apperrors "github.com/skillsenselab/minutes/errors"
	"github.com/skillsenselab/minutes/logger"
	"github.com/skillsenselab/minutes/redisconn"
)

// priorityBand separates priority classes in the ready-set score while
// leaving room for 2^40 sequence numbers of FIFO order within each class.
const priorityBand = 1 << 40

// Config holds queue tuning knobs.
type Config struct {
	// Namespace prefixes every Redis key of this queue.
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
	// LeaseTimeout is the visibility timeout of a dequeued job.
	LeaseTimeout time.Duration `yaml:"lease_timeout" mapstructure:"lease_timeout"`
	// MaxAttempts is the default attempt budget for jobs enqueued without
	// an explicit one.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
	// BaseDelay is the default backoff seed for jobs enqueued without an
	// explicit one.
	BaseDelay time.Duration `yaml:"base_delay" mapstructure:"base_delay"`
	// MaxBackoff caps the exponential retry delay.
	MaxBackoff time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
	// CompletedRetention bounds the retained completed-job history.
	CompletedRetention int `yaml:"completed_retention" mapstructure:"completed_retention"`
	// DeadRetention bounds the retained dead-job history.
	DeadRetention int `yaml:"dead_retention" mapstructure:"dead_retention"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Namespace == "" {
		c.Namespace = "minutes:queue"
	}
	if c.LeaseTimeout <= 0 {
		c.LeaseTimeout = 5 * time.Minute
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 5 * time.Minute
	}
	if c.CompletedRetention <= 0 {
		c.CompletedRetention = 10
	}
	if c.DeadRetention <= 0 {
		c.DeadRetention = 50
	}
}

type keyset struct {
	ready     string
	delayed   string
	leased    string
	scores    string
	seq       string
	completed string
	dead      string
	jobPrefix string
}

func newKeyset(ns string) keyset {
	return keyset{
		ready:     ns + ":ready",
		delayed:   ns + ":delayed",
		leased:    ns + ":leased",
		scores:    ns + ":scores",
		seq:       ns + ":seq",
		completed: ns + ":completed",
		dead:      ns + ":dead",
		jobPrefix: ns + ":job:",
	}
}

func (k keyset) job(id string) string { return k.jobPrefix + id }

// RedisQueue implements Queue on Redis. All scheduling state lives in
// Redis, so jobs survive process restart and multiple worker processes can
// share one queue.
type RedisQueue struct {
	rdb  *goredis.Client
	cfg  Config
	keys keyset
	log  *logger.Logger
	now  func() time.Time
}

// Option configures a RedisQueue.
type Option func(*RedisQueue)

// WithClock overrides the queue's time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(q *RedisQueue) { q.now = now }
}

// NewRedisQueue creates a durable queue on the given Redis client.
func NewRedisQueue(client *redisconn.Client, cfg Config, log *logger.Logger, opts ...Option) *RedisQueue {
	cfg.ApplyDefaults()
	q := &RedisQueue{
		rdb:  client.Unwrap(),
		cfg:  cfg,
		keys: newKeyset(cfg.Namespace),
		log:  log.WithComponent("queue"),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

var _ Queue = (*RedisQueue)(nil)

// Enqueue adds a job to the ready set.
func (q *RedisQueue) Enqueue(ctx context.Context, meetingID, audioPath string, opts Options) (*Job, error) {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = q.cfg.MaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = q.cfg.BaseDelay
	}
	opts.ApplyDefaults()

	seq, err := q.rdb.Incr(ctx, q.keys.seq).Result()
	if err != nil {
		return nil, apperrors.Infrastructure("job queue", err)
	}

	job := &Job{
		ID:          uuid.NewString(),
		MeetingID:   meetingID,
		AudioPath:   audioPath,
		Attempt:     1,
		MaxAttempts: opts.MaxAttempts,
		Priority:    opts.Priority,
		BaseDelay:   opts.BaseDelay,
		EnqueuedAt:  q.now().UTC(),
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, apperrors.Internal("marshal job", err)
	}

	score := float64(opts.Priority)*priorityBand + float64(seq)

	pipe := q.rdb.TxPipeline()
	pipe.Set(ctx, q.keys.job(job.ID), payload, 0)
	pipe.HSet(ctx, q.keys.scores, job.ID, score)
	pipe.ZAdd(ctx, q.keys.ready, goredis.Z{Score: score, Member: job.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, apperrors.Infrastructure("job queue", err)
	}

	q.log.Info("job enqueued", logger.Fields(
		logger.FieldJobID, job.ID,
		logger.FieldMeetingID, meetingID,
		logger.FieldPriority, opts.Priority,
	))
	return job, nil
}

// Dequeue leases the next ready job. Expired leases and due retries are
// swept back into the ready set first, so any worker can reclaim work
// abandoned by a crashed peer.
func (q *RedisQueue) Dequeue(ctx context.Context) (*Job, error) {
	nowMs := q.now().UnixMilli()

	for _, src := range []string{q.keys.delayed, q.keys.leased} {
		err := moveDueScript.Run(ctx, q.rdb, []string{src, q.keys.ready, q.keys.scores}, nowMs).Err()
		if err != nil && err != goredis.Nil {
			return nil, apperrors.Infrastructure("job queue", err)
		}
	}

	deadline := q.now().Add(q.cfg.LeaseTimeout).UnixMilli()
	for {
		res, err := popScript.Run(ctx, q.rdb, []string{q.keys.ready, q.keys.leased}, deadline).Result()
		if err == goredis.Nil {
			return nil, nil
		}
		if err != nil {
			return nil, apperrors.Infrastructure("job queue", err)
		}
		id, _ := res.(string)

		payload, err := q.rdb.Get(ctx, q.keys.job(id)).Result()
		if err == goredis.Nil {
			// stale zset entry; drop its lease and score and keep popping
			q.rdb.ZRem(ctx, q.keys.leased, id)
			q.rdb.HDel(ctx, q.keys.scores, id)
			continue
		}
		if err != nil {
			return nil, apperrors.Infrastructure("job queue", err)
		}

		var job Job
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			return nil, apperrors.Internal(fmt.Sprintf("unmarshal job %s", id), err)
		}
		return &job, nil
	}
}

// Ack removes a leased job permanently and retains it in the bounded
// completed history.
func (q *RedisQueue) Ack(ctx context.Context, jobID string) error {
	payload, err := q.rdb.Get(ctx, q.keys.job(jobID)).Result()
	if err != nil && err != goredis.Nil {
		return apperrors.Infrastructure("job queue", err)
	}

	pipe := q.rdb.TxPipeline()
	pipe.ZRem(ctx, q.keys.leased, jobID)
	pipe.HDel(ctx, q.keys.scores, jobID)
	pipe.Del(ctx, q.keys.job(jobID))
	if payload != "" {
		pipe.LPush(ctx, q.keys.completed, payload)
		pipe.LTrim(ctx, q.keys.completed, 0, int64(q.cfg.CompletedRetention-1))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Infrastructure("job queue", err)
	}

	q.log.Info("job acked", logger.Fields(logger.FieldJobID, jobID))
	return nil
}

// Fail records a failed attempt. Non-retryable causes and exhausted
// budgets move the job to the dead set; otherwise it is re-scheduled
// after an exponential backoff delay with an incremented attempt counter.
func (q *RedisQueue) Fail(ctx context.Context, jobID string, cause error) (bool, error) {
	payload, err := q.rdb.Get(ctx, q.keys.job(jobID)).Result()
	if err == goredis.Nil {
		return false, apperrors.NotFound("job", jobID)
	}
	if err != nil {
		return false, apperrors.Infrastructure("job queue", err)
	}

	var job Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return false, apperrors.Internal(fmt.Sprintf("unmarshal job %s", jobID), err)
	}
	if cause != nil {
		job.LastError = cause.Error()
	}

	retry := apperrors.IsRetryable(cause) && job.Attempt < job.MaxAttempts
	if !retry {
		if apperrors.IsRetryable(cause) {
			// retryable cause, budget spent
			job.LastError = apperrors.RetriesExhausted(job.Attempt, cause).Error()
		}
		dead, merr := json.Marshal(&job)
		if merr != nil {
			return false, apperrors.Internal("marshal dead job", merr)
		}
		pipe := q.rdb.TxPipeline()
		pipe.ZRem(ctx, q.keys.leased, jobID)
		pipe.HDel(ctx, q.keys.scores, jobID)
		pipe.Del(ctx, q.keys.job(jobID))
		pipe.LPush(ctx, q.keys.dead, dead)
		pipe.LTrim(ctx, q.keys.dead, 0, int64(q.cfg.DeadRetention-1))
		if _, err := pipe.Exec(ctx); err != nil {
			return false, apperrors.Infrastructure("job queue", err)
		}
		q.log.Warn("job moved to dead set", logger.Fields(
			logger.FieldJobID, jobID,
			logger.FieldMeetingID, job.MeetingID,
			logger.FieldAttempt, job.Attempt,
			logger.FieldError, job.LastError,
		))
		return true, nil
	}

	delay := Backoff(job.BaseDelay, job.Attempt, q.cfg.MaxBackoff)
	job.Attempt++
	updated, merr := json.Marshal(&job)
	if merr != nil {
		return false, apperrors.Internal("marshal job", merr)
	}
	readyAt := q.now().Add(delay).UnixMilli()

	pipe := q.rdb.TxPipeline()
	pipe.Set(ctx, q.keys.job(jobID), updated, 0)
	pipe.ZRem(ctx, q.keys.leased, jobID)
	pipe.ZAdd(ctx, q.keys.delayed, goredis.Z{Score: float64(readyAt), Member: jobID})
	if _, err := pipe.Exec(ctx); err != nil {
		return false, apperrors.Infrastructure("job queue", err)
	}

	q.log.Info("job re-scheduled", logger.Fields(
		logger.FieldJobID, jobID,
		logger.FieldMeetingID, job.MeetingID,
		logger.FieldAttempt, job.Attempt,
		"delay", delay.String(),
	))
	return false, nil
}

// Stats returns current job counts per section.
func (q *RedisQueue) Stats(ctx context.Context) (Stats, error) {
	pipe := q.rdb.Pipeline()
	ready := pipe.ZCard(ctx, q.keys.ready)
	delayed := pipe.ZCard(ctx, q.keys.delayed)
	leased := pipe.ZCard(ctx, q.keys.leased)
	completed := pipe.LLen(ctx, q.keys.completed)
	dead := pipe.LLen(ctx, q.keys.dead)
	if _, err := pipe.Exec(ctx); err != nil {
		return Stats{}, apperrors.Infrastructure("job queue", err)
	}

	return Stats{
		Waiting:   ready.Val() + delayed.Val(),
		Active:    leased.Val(),
		Completed: completed.Val(),
		Failed:    dead.Val(),
	}, nil
}

// DeadJobs returns the retained dead jobs, most recent first.
func (q *RedisQueue) DeadJobs(ctx context.Context) ([]Job, error) {
	raw, err := q.rdb.LRange(ctx, q.keys.dead, 0, int64(q.cfg.DeadRetention-1)).Result()
	if err != nil {
		return nil, apperrors.Infrastructure("job queue", err)
	}
	jobs := make([]Job, 0, len(raw))
	for _, p := range raw {
		var job Job
		if err := json.Unmarshal([]byte(p), &job); err != nil {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

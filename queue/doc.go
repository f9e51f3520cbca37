// Package queue implements the durable job queue that decouples meeting
// submission from pipeline execution.
//
// Jobs are ordered by priority (lower first), FIFO within equal priority,
// and survive process restart in Redis. A dequeued job is leased: invisible
// to other workers until acknowledged, failed, or its visibility timeout
// passes, at which point it becomes re-deliverable (at-least-once).
// Failed jobs are re-scheduled with exponential backoff until their attempt
// budget runs out, then moved to a bounded dead set. A bounded window of
// completed and dead jobs is retained for diagnostics.
package queue

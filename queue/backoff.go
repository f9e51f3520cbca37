package queue

import "time"

// Backoff returns the delay before re-scheduling a job whose attempt-th
// run failed: base * 2^(attempt-1), capped at max. Pure so the retry
// schedule is testable without a queue or a clock.
func Backoff(base time.Duration, attempt int, max time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}

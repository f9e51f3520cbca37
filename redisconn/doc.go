// Package redisconn provides the Redis client used as the durable backing
// store of the job queue. It wraps go-redis with configuration defaults,
// validation, and structured logging.
package redisconn

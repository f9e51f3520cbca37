// Package logger provides structured logging for the minutes pipeline,
// built on zerolog.
//
// Every long-lived component (queue, worker, stores, providers) receives a
// *Logger and tags its output with a component name:
//
//	log := logger.NewDefault("minutes-worker").WithComponent("queue")
//	log.Info("job enqueued", logger.Fields(logger.FieldJobID, job.ID))
package logger

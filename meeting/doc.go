// Package meeting holds the meeting record model, its status lifecycle,
// and the record store abstraction the pipeline persists progress through.
//
// A record is created in StatusUploaded by the submission path and from
// then on mutated only by the pipeline worker, one lease at a time. Human
// edits (action items) happen after the record is terminal and never race
// the pipeline.
package meeting

// Package pipeline turns uploaded meeting audio into structured minutes.
//
// Processor is the state machine: it drives a meeting record from
// uploaded through transcribing, transcribed, and summarizing to
// completed, persisting each transition as a single atomic record update.
// Worker runs Processor against jobs leased from the durable queue;
// InlineRunner runs the same Processor in-process when no queue is
// available. Submitter picks between the two.
package pipeline

package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/minutes/artifact"
	apperrors "github.com/skillsenselab/minutes/errors"
	"github.com/skillsenselab/minutes/logger"
	"github.com/skillsenselab/minutes/meeting"
	"github.com/skillsenselab/minutes/summarization"
	"github.com/skillsenselab/minutes/transcription"
)

// Processor drives one meeting record through the processing stages:
//
//	uploaded -> transcribing -> transcribed -> summarizing -> completed
//
// Any stage failure moves the record to failed with the error persisted.
// Process is re-entrant: a retried job re-enters at transcribing and each
// stage overwrites its own output, so a repeated run converges on the same
// terminal record. The queue worker and the in-process fallback both run
// jobs through this same function.
type Processor struct {
	store         meeting.Store
	artifacts     artifact.Store
	transcriber   transcription.Provider
	summarizer    summarization.Provider
	maxAudioBytes int64
	log           *logger.Logger
}

// ProcessorConfig wires a Processor's collaborators.
type ProcessorConfig struct {
	Store       meeting.Store
	Artifacts   artifact.Store
	Transcriber transcription.Provider
	Summarizer  summarization.Provider
	// MaxAudioBytes is the artifact size ceiling; <= 0 applies the
	// transcription default.
	MaxAudioBytes int64
	Logger        *logger.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(cfg ProcessorConfig) *Processor {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Processor{
		store:         cfg.Store,
		artifacts:     cfg.Artifacts,
		transcriber:   cfg.Transcriber,
		summarizer:    cfg.Summarizer,
		maxAudioBytes: cfg.MaxAudioBytes,
		log:           log.WithComponent("pipeline"),
	}
}

// Process runs the full pipeline for one meeting. The returned error is
// the stage error; the record's terminal state has already been persisted
// when it is non-nil.
func (p *Processor) Process(ctx context.Context, meetingID, audioPath string) error {
	log := p.log.WithFields(logger.Fields(
		logger.FieldMeetingID, meetingID,
		logger.FieldAudioPath, audioPath,
	))

	if err := transcription.ValidateAudioFile(audioPath, p.maxAudioBytes); err != nil {
		return p.fail(ctx, log, meetingID, err)
	}

	// Entering transcribing clears any error left by a previous attempt.
	if err := p.update(ctx, meetingID, map[string]any{
		meeting.FieldStatus: meeting.StatusTranscribing,
		meeting.FieldError:  "",
	}); err != nil {
		return err
	}
	log.Info("transcription started", logger.Fields(logger.FieldProvider, p.transcriber.Name()))

	tr, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return p.fail(ctx, log, meetingID, err)
	}

	if err := p.update(ctx, meetingID, map[string]any{
		meeting.FieldStatus:     meeting.StatusTranscribed,
		meeting.FieldTranscript: tr.Text,
	}); err != nil {
		return err
	}

	if err := p.update(ctx, meetingID, map[string]any{
		meeting.FieldStatus: meeting.StatusSummarizing,
	}); err != nil {
		return err
	}
	log.Info("summarization started", logger.Fields(logger.FieldProvider, p.summarizer.Name()))

	sum, err := p.summarizer.Summarize(ctx, tr.Text)
	if err != nil {
		return p.fail(ctx, log, meetingID, err)
	}

	if err := p.update(ctx, meetingID, map[string]any{
		meeting.FieldStatus:      meeting.StatusCompleted,
		meeting.FieldSummary:     sum.Summary,
		meeting.FieldDecisions:   sum.KeyDecisions,
		meeting.FieldActionItems: toRecordActionItems(sum.ActionItems),
		meeting.FieldMetadata: meeting.Metadata{
			Language:     tr.Language,
			Duration:     tr.Duration,
			KeyTopics:    sum.KeyTopics,
			Participants: sum.Participants,
			NextSteps:    sum.NextSteps,
		},
	}); err != nil {
		return err
	}

	// The artifact is no longer needed. Release failures do not fail the
	// job; the record is already completed.
	if err := p.artifacts.Release(ctx, audioPath); err != nil {
		log.Warn("audio artifact release failed", logger.ErrorFields("release", err))
	}

	log.Info("meeting processed", logger.Fields(logger.FieldStatus, string(meeting.StatusCompleted)))
	return nil
}

// fail persists the terminal failed state and returns the stage error so
// the caller can drive retry scheduling from it.
func (p *Processor) fail(ctx context.Context, log *logger.Logger, meetingID string, cause error) error {
	log.Error("stage failed", logger.ErrorFields("process", cause))
	if err := p.store.Update(ctx, meetingID, map[string]any{
		meeting.FieldStatus: meeting.StatusFailed,
		meeting.FieldError:  cause.Error(),
	}); err != nil {
		log.Error("failed state not persisted", logger.ErrorFields("update", err))
	}
	return cause
}

// update applies a record update, wrapping store failures as retryable
// infrastructure errors.
func (p *Processor) update(ctx context.Context, meetingID string, fields map[string]any) error {
	if err := p.store.Update(ctx, meetingID, fields); err != nil {
		if apperrors.FromError(err) != nil {
			return err
		}
		return apperrors.Infrastructure("record store", err)
	}
	return nil
}

// toRecordActionItems converts provider action items to persisted ones,
// assigning ids and parsing due dates. Unparseable dates are dropped
// rather than failing the stage.
func toRecordActionItems(items []summarization.ActionItem) []meeting.ActionItem {
	out := make([]meeting.ActionItem, 0, len(items))
	for _, item := range items {
		rec := meeting.ActionItem{
			ID:       uuid.NewString(),
			Text:     item.Text,
			Owner:    item.Owner,
			Priority: item.Priority,
		}
		if item.DueDate != "" {
			if due, err := time.Parse("2006-01-02", item.DueDate); err == nil {
				rec.DueDate = &due
			}
		}
		out = append(out, rec)
	}
	return out
}

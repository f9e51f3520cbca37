package meeting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/minutes/artifact"
	apperrors "github.com/skillsenselab/minutes/errors"
)

// ActionItemPatch describes a human edit to an existing action item.
// Nil fields are left unchanged.
type ActionItemPatch struct {
	Completed *bool
	Text      *string
}

// UpdateActionItem applies a patch to one action item of a meeting and
// returns the updated record. The whole actionItems field is written back
// in a single atomic update.
func UpdateActionItem(ctx context.Context, store Store, meetingID, actionID string, patch ActionItemPatch) (*Record, error) {
	rec, err := store.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range rec.ActionItems {
		if rec.ActionItems[i].ID != actionID {
			continue
		}
		found = true
		if patch.Completed != nil {
			rec.ActionItems[i].Completed = *patch.Completed
		}
		if patch.Text != nil {
			rec.ActionItems[i].Text = *patch.Text
		}
	}
	if !found {
		return nil, apperrors.NotFound("action item", actionID)
	}

	if err := store.Update(ctx, meetingID, map[string]any{FieldActionItems: rec.ActionItems}); err != nil {
		return nil, err
	}
	return rec, nil
}

// AddActionItem appends a new action item with Completed defaulting to
// false, and returns the updated record.
func AddActionItem(ctx context.Context, store Store, meetingID, text, owner string, dueDate *time.Time) (*Record, error) {
	rec, err := store.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	rec.ActionItems = append(rec.ActionItems, ActionItem{
		ID:      uuid.NewString(),
		Text:    text,
		Owner:   owner,
		DueDate: dueDate,
	})

	if err := store.Update(ctx, meetingID, map[string]any{FieldActionItems: rec.ActionItems}); err != nil {
		return nil, err
	}
	return rec, nil
}

// Remove deletes a meeting record and releases its audio artifact.
// Artifact release is best-effort; a missing file is not an error.
func Remove(ctx context.Context, store Store, artifacts artifact.Store, id string) error {
	rec, err := store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rec.AudioPath != "" {
		// non-fatal by contract; Release implementations log their own failures
		_ = artifacts.Release(ctx, rec.AudioPath)
	}
	return nil
}

package meeting

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/skillsenselab/minutes/errors"
	"github.com/skillsenselab/minutes/artifact"
)

func seedRecord(t *testing.T, store Store, id string) *Record {
	t.Helper()
	rec := &Record{
		ID:         id,
		Title:      "weekly sync",
		AudioPath:  "uploads/" + id + ".wav",
		Status:     StatusUploaded,
		UploadDate: time.Now(),
	}
	if err := store.Insert(context.Background(), rec); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return rec
}

func TestMemoryStoreUpdateAppliesFields(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	seedRecord(t, store, "m1")

	err := store.Update(ctx, "m1", map[string]any{
		FieldStatus:     StatusTranscribed,
		FieldTranscript: "hello world",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	rec, err := store.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Status != StatusTranscribed {
		t.Errorf("expected transcribed, got %s", rec.Status)
	}
	if rec.Transcript != "hello world" {
		t.Errorf("expected transcript, got %q", rec.Transcript)
	}
	if err := rec.CheckInvariants(); err != nil {
		t.Errorf("invariants violated: %v", err)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	seedRecord(t, store, "m1")

	rec, _ := store.Get(ctx, "m1")
	rec.Status = StatusFailed

	again, _ := store.Get(ctx, "m1")
	if again.Status != StatusUploaded {
		t.Error("mutating a returned record must not affect the store")
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	if apperrors.CodeOf(err) != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if err := store.Update(ctx, "missing", map[string]any{FieldStatus: StatusFailed}); err == nil {
		t.Error("expected update of missing record to fail")
	}
}

func TestUpdateActionItem(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	rec := seedRecord(t, store, "m1")
	rec.ActionItems = []ActionItem{{ID: "a1", Text: "send notes", Owner: "Sarah"}}
	if err := store.Update(ctx, "m1", map[string]any{FieldActionItems: rec.ActionItems}); err != nil {
		t.Fatalf("seed action items: %v", err)
	}

	done := true
	text := "send notes to the whole team"
	updated, err := UpdateActionItem(ctx, store, "m1", "a1", ActionItemPatch{Completed: &done, Text: &text})
	if err != nil {
		t.Fatalf("update action item: %v", err)
	}
	if !updated.ActionItems[0].Completed {
		t.Error("expected item completed")
	}
	if updated.ActionItems[0].Text != text {
		t.Errorf("expected text updated, got %q", updated.ActionItems[0].Text)
	}

	_, err = UpdateActionItem(ctx, store, "m1", "nope", ActionItemPatch{Completed: &done})
	if apperrors.CodeOf(err) != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND for unknown action item, got %v", err)
	}
}

func TestAddActionItem(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	seedRecord(t, store, "m1")

	due := time.Date(2024, 10, 18, 0, 0, 0, 0, time.UTC)
	rec, err := AddActionItem(ctx, store, "m1", "book the room", "Mike", &due)
	if err != nil {
		t.Fatalf("add action item: %v", err)
	}

	if len(rec.ActionItems) != 1 {
		t.Fatalf("expected 1 action item, got %d", len(rec.ActionItems))
	}
	item := rec.ActionItems[0]
	if item.ID == "" {
		t.Error("expected generated id")
	}
	if item.Completed {
		t.Error("completed must default to false")
	}
	if item.Owner != "Mike" || item.Text != "book the room" {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestRemoveReleasesAudio(t *testing.T) {
	store := NewMemoryStore()
	artifacts := artifact.NewMemoryStore("uploads/m1.wav")
	ctx := context.Background()
	seedRecord(t, store, "m1")

	if err := Remove(ctx, store, artifacts, "m1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := store.Get(ctx, "m1"); err == nil {
		t.Error("expected record gone")
	}
	released := artifacts.Released()
	if len(released) != 1 || released[0] != "uploads/m1.wav" {
		t.Errorf("expected audio released, got %v", released)
	}
}

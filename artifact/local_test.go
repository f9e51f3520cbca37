package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/minutes/logger"
)

func newLocalStore(t *testing.T) (*LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewLocalStore(dir, logger.NewNop())
	if err != nil {
		t.Fatalf("failed to create local store: %v", err)
	}
	return store, dir
}

func TestLocalReleaseDeletesFile(t *testing.T) {
	store, dir := newLocalStore(t)
	ctx := context.Background()

	path := filepath.Join(dir, "talk.wav")
	if err := os.WriteFile(path, []byte("audio"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := store.Release(ctx, "talk.wav"); err != nil {
		t.Fatalf("release: %v", err)
	}

	exists, err := store.Exists(ctx, "talk.wav")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("expected file gone after release")
	}
}

func TestLocalReleaseMissingIsSuccess(t *testing.T) {
	store, _ := newLocalStore(t)
	if err := store.Release(context.Background(), "never-uploaded.mp3"); err != nil {
		t.Errorf("expected missing file to release cleanly, got %v", err)
	}
}

func TestLocalRejectsEscapingPaths(t *testing.T) {
	store, _ := newLocalStore(t)
	if err := store.Release(context.Background(), "../../etc/passwd"); err == nil {
		t.Error("expected error for path escaping the base directory")
	}
}

func TestMemoryStoreRecordsReleases(t *testing.T) {
	store := NewMemoryStore("a.wav")
	ctx := context.Background()

	if err := store.Release(ctx, "a.wav"); err != nil {
		t.Fatalf("release: %v", err)
	}
	exists, _ := store.Exists(ctx, "a.wav")
	if exists {
		t.Error("expected a.wav released")
	}
	if got := store.Released(); len(got) != 1 || got[0] != "a.wav" {
		t.Errorf("unexpected released list: %v", got)
	}
}

package transcription

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/skillsenselab/minutes/errors"
)

func writeTempAudio(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write temp audio: %v", err)
	}
	return path
}

func TestValidateAudioFileAcceptsKnownExtensions(t *testing.T) {
	for _, name := range []string{"talk.wav", "call.mp3", "clip.MP4", "memo.m4a", "note.ogg"} {
		path := writeTempAudio(t, name, 128)
		if err := ValidateAudioFile(path, 0); err != nil {
			t.Errorf("ValidateAudioFile(%q) = %v, want nil", name, err)
		}
	}
}

func TestValidateAudioFileRejectsUnknownExtension(t *testing.T) {
	err := ValidateAudioFile("/tmp/notes.txt", 0)
	if err == nil {
		t.Fatal("expected error for .txt artifact")
	}
	if code := apperrors.CodeOf(err); code != apperrors.ErrCodeUnsupportedFormat {
		t.Errorf("code = %s, want %s", code, apperrors.ErrCodeUnsupportedFormat)
	}
	if apperrors.IsRetryable(err) {
		t.Error("unsupported format should not be retryable")
	}
}

func TestValidateAudioFileRejectsOversizedArtifact(t *testing.T) {
	path := writeTempAudio(t, "big.wav", 2048)

	err := ValidateAudioFile(path, 1024)
	if err == nil {
		t.Fatal("expected error for oversized artifact")
	}
	if code := apperrors.CodeOf(err); code != apperrors.ErrCodeFileTooLarge {
		t.Errorf("code = %s, want %s", code, apperrors.ErrCodeFileTooLarge)
	}
	if apperrors.IsRetryable(err) {
		t.Error("oversized artifact should not be retryable")
	}
}

func TestValidateAudioFileSkipsSizeCheckWhenUnstattable(t *testing.T) {
	// Extension is fine and the file does not exist locally; only the
	// extension check applies.
	if err := ValidateAudioFile("/nonexistent/dir/talk.wav", 1); err != nil {
		t.Errorf("ValidateAudioFile = %v, want nil", err)
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	err := Validation("bad input")
	if !strings.Contains(err.Error(), "VALIDATION_FAILED") {
		t.Errorf("expected code in message, got %s", err.Error())
	}

	withCause := Provider("transcription", "timeout").WithCause(stderrors.New("dial tcp"))
	if !strings.Contains(withCause.Error(), "dial tcp") {
		t.Errorf("expected cause in message, got %s", withCause.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Infrastructure("queue", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestRetryableClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"validation", Validation("bad"), false},
		{"unsupported format", UnsupportedFormat(".txt"), false},
		{"too large", FileTooLarge(30<<20, 25<<20), false},
		{"provider", Provider("summarization", "http 503"), true},
		{"infrastructure", Infrastructure("redis", stderrors.New("down")), true},
		{"exhausted", RetriesExhausted(3, nil), false},
		{"plain error", stderrors.New("whatever"), true},
		{"wrapped app error", fmt.Errorf("stage: %w", Validation("bad")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(UnsupportedFormat(".txt")) != ErrCodeUnsupportedFormat {
		t.Error("expected UNSUPPORTED_FORMAT")
	}
	if CodeOf(stderrors.New("plain")) != ErrCodeInternal {
		t.Error("expected INTERNAL_ERROR for plain error")
	}
	if CodeOf(fmt.Errorf("wrap: %w", NotFound("meeting", "m1"))) != ErrCodeNotFound {
		t.Error("expected NOT_FOUND through wrapping")
	}
}

func TestWithDetail(t *testing.T) {
	err := FileTooLarge(30<<20, 25<<20)
	if err.Details["size_bytes"].(int64) != 30<<20 {
		t.Errorf("expected size detail, got %v", err.Details["size_bytes"])
	}
}

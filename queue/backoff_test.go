package queue

import (
	"testing"
	"time"
)

func TestBackoffSchedule(t *testing.T) {
	base := 2 * time.Second
	max := 5 * time.Minute

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{0, 2 * time.Second}, // clamped to first attempt
	}

	for _, tt := range tests {
		if got := Backoff(base, tt.attempt, max); got != tt.want {
			t.Errorf("Backoff(attempt=%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestBackoffCap(t *testing.T) {
	if got := Backoff(2*time.Second, 30, 5*time.Minute); got != 5*time.Minute {
		t.Errorf("expected cap at 5m, got %v", got)
	}
	if got := Backoff(10*time.Minute, 1, 5*time.Minute); got != 5*time.Minute {
		t.Errorf("expected base capped at max, got %v", got)
	}
}

package logger

import "testing"

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level info, got %s", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format console, got %s", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields(FieldJobID, "j1", FieldAttempt, 2)
	if m[FieldJobID] != "j1" {
		t.Errorf("expected j1, got %v", m[FieldJobID])
	}
	if m[FieldAttempt] != 2 {
		t.Errorf("expected 2, got %v", m[FieldAttempt])
	}

	// odd trailing value is dropped
	m = Fields(FieldJobID, "j1", FieldStatus)
	if len(m) != 1 {
		t.Errorf("expected 1 field, got %d", len(m))
	}
}

func TestWithComponent(t *testing.T) {
	log := NewNop().WithComponent("queue")
	if log == nil {
		t.Fatal("expected logger")
	}
	log.Info("should not panic")
}

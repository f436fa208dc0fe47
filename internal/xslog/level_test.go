package xslog

import (
	"bytes"
	"strings"
	"testing"

	go_json "github.com/goccy/go-json"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: LevelDebug},
		{name: "upper case", input: "WARN", want: LevelWarn},
		{name: "mixed case", input: "Error", want: LevelError},
		{name: "info", input: "info", want: LevelInfo},
		{name: "unknown", input: "trace", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvKey, "nonsense")
	if got := FromEnv(); got != Default {
		t.Errorf("FromEnv() = %q, want %q", got, Default)
	}

	t.Setenv(EnvKey, "debug")
	if got := FromEnv(); got != LevelDebug {
		t.Errorf("FromEnv() = %q, want %q", got, LevelDebug)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json filters below level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, LevelWarn, FormatJSON)
		logger.Info("dropped")
		logger.Warn("kept", PaymentID("pay_1"))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
		}

		var entry map[string]any
		if err := go_json.Unmarshal([]byte(lines[0]), &entry); err != nil {
			t.Fatalf("failed to decode log line: %v", err)
		}
		if entry["msg"] != "kept" {
			t.Errorf("msg = %v, want %q", entry["msg"], "kept")
		}
		if entry["payment_id"] != "pay_1" {
			t.Errorf("payment_id = %v, want %q", entry["payment_id"], "pay_1")
		}
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, LevelInfo, FormatText)
		logger.Info("hello", EventType("SALE_APPROVED"))

		if !strings.Contains(buf.String(), "event_type=SALE_APPROVED") {
			t.Errorf("text output = %q, want event_type attribute", buf.String())
		}
	})
}

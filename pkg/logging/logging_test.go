package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"", LevelInfo, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCLIMode_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Debug("Poller", "hidden %d", 1)
	Info("Poller", "refreshed %d hosts", 3)
	Error("Dispatcher", errors.New("boom"), "command failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "refreshed 3 hosts")
	assert.Contains(t, out, "subsystem=Poller")
	assert.Contains(t, out, "error=boom")
}

func TestTUIMode_SendsEntriesAndWritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "fleetctl.log")
	ch := InitForTUI(LevelDebug, logFile)
	defer InitForCLI(LevelInfo, &bytes.Buffer{})

	Warn("Engine", "host %s vanished", "h1")

	select {
	case e := <-ch:
		assert.Equal(t, LevelWarn, e.Level)
		assert.Equal(t, "Engine", e.Subsystem)
		assert.Equal(t, "host h1 vanished", e.Message)
	case <-time.After(time.Second):
		t.Fatal("expected a log entry on the TUI channel")
	}

	Close()
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"host h1 vanished"`)
}

func TestFormatEntry(t *testing.T) {
	ts := time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)
	line := FormatEntry(LogEntry{Timestamp: ts, Level: LevelError, Subsystem: "API", Message: "request failed", Err: errors.New("timeout")})
	assert.Equal(t, "13:04:05 [ERROR] API: request failed (error: timeout)", line)
}

package barchart

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	info := NewLogger(&buf, false)
	info.Debug("hidden")
	info.Info("shown", "bars", 3)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "bars") {
		t.Errorf("info message missing: %q", out)
	}

	buf.Reset()
	NewLogger(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug message missing at debug level")
	}
}

func TestChartLogsSkippedRecords(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultChartOptions()
	opts.Logger = NewLogger(&buf, false)
	c := NewChart(nil, opts)
	_, _ = c.Join([]Record{{Key: "x", Color: "plaid", Value: 1}})
	if !strings.Contains(buf.String(), "skipping record") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

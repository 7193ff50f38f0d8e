package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWithOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, "debug", "json")
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("unexpected level %v", l.GetLevel())
	}

	l.WithField("task", 7).Info("created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["message"] != "created" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("missing ts key: %v", entry)
	}
	if entry["task"] != float64(7) {
		t.Fatalf("missing task field: %v", entry)
	}
}

func TestNewWithOutputTextAndBadLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, "loud", "TEXT")
	if l.GetLevel() != logrus.InfoLevel {
		t.Fatalf("bad level should fall back to info, got %v", l.GetLevel())
	}
	l.Debug("hidden")
	l.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry should be filtered: %s", out)
	}
	if !strings.Contains(out, "msg=shown") {
		t.Fatalf("expected text formatter output, got %s", out)
	}
}
